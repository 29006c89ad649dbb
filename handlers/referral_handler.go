package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/services"
)

// GetMyReferrals returns the worker's referral code, the three-level
// ledger summary and the direct downline list.
func GetMyReferrals(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	settings, err := database.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load settings"})
	}

	summary := services.SummaryFor(userID, settings)
	direct := services.ReferralChildren(database.DB, userID)

	var code string
	if user.ReferralCode != nil {
		code = *user.ReferralCode
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"referral_code":     code,
			"summary":           summary,
			"direct_referrals":  direct,
			"credited_earnings": user.ReferralEarnings,
		},
	})
}

func GetMyCommissions(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var commissions []models.ReferralCommission
	database.DB.Where("earner_id = ?", userID).
		Order("created_at desc").
		Limit(100).
		Find(&commissions)

	return c.JSON(fiber.Map{"success": true, "data": commissions})
}
