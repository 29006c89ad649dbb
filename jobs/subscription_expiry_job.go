package jobs

import (
	"log"
	"time"

	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/notifications"
)

// ExpireSubscriptions sweeps active subscriptions whose validity window
// has lapsed. Expired workers keep their wallet; they just stop seeing
// tasks until they buy a new plan.
func ExpireSubscriptions() {
	log.Println("Running job: ExpireSubscriptions...")

	var lapsed []models.Subscription
	err := database.DB.Preload("User").Preload("Plan").
		Where("status = ? AND expires_at < ?", "active", time.Now()).
		Find(&lapsed).Error
	if err != nil {
		log.Printf("🔥 Error checking for lapsed subscriptions: %v", err)
		return
	}

	if len(lapsed) == 0 {
		return
	}

	ids := make([]interface{}, 0, len(lapsed))
	for _, sub := range lapsed {
		ids = append(ids, sub.ID)
	}
	result := database.DB.Model(&models.Subscription{}).
		Where("id IN ?", ids).
		Update("status", "expired")
	if result.Error != nil {
		log.Printf("🔥 Error expiring subscriptions: %v", result.Error)
		return
	}

	for _, sub := range lapsed {
		go notifications.SendEmail(sub.User.FullName, sub.User.Email,
			"Your Plan Has Expired",
			"<h1>Plan Expired</h1><p>Your "+sub.Plan.Name+" plan has run its course. Renew now to keep earning daily.</p>")
	}

	log.Printf("✅ Expired %d subscription(s).", result.RowsAffected)
}
