package jobs

import (
	"log"

	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
)

// ResetDailyCounters zeroes every worker's task counter at midnight PKT
// so quotas start fresh with the new task. Workers whose counter was
// never touched today are skipped by the WHERE clause.
func ResetDailyCounters() {
	log.Println("Running job: ResetDailyCounters...")

	result := database.DB.Model(&models.User{}).
		Where("tasks_done_today > 0").
		Update("tasks_done_today", 0)

	if result.Error != nil {
		log.Printf("🔥 Error resetting daily task counters: %v", result.Error)
		return
	}

	log.Printf("✅ Reset daily counters for %d worker(s).", result.RowsAffected)
}
