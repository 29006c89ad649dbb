package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/services"
)

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

func GetProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	database.DB.Save(&user)

	return c.JSON(fiber.Map{"success": true, "data": user})
}

// GetMyDashboard is the single call the worker home screen runs on.
func GetMyDashboard(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	sub := currentSubscription(database.DB, userID)
	doneToday := services.TodayCounter(user.TasksDoneToday, user.LastTaskDate)

	var pendingSubmissions int64
	database.DB.Model(&models.Submission{}).
		Where("user_id = ? AND status = ?", userID, "pending").
		Count(&pendingSubmissions)

	var withdrawnTotal int64
	database.DB.Model(&models.Withdrawal{}).
		Where("user_id = ? AND status = ?", userID, "approved").
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&withdrawnTotal)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"wallet_balance":      user.WalletBalance,
			"task_earnings":       user.TaskEarnings,
			"referral_earnings":   user.ReferralEarnings,
			"withdrawn_total":     withdrawnTotal,
			"tasks_done_today":    doneToday,
			"pending_submissions": pendingSubmissions,
			"subscription":        sub,
			"kyc_status":          user.KYCStatus,
		},
	})
}
