package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/services"
)

type WithdrawalRequest struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Method        string `json:"method" validate:"required,oneof=jazzcash easypaisa bank"`
	AccountNumber string `json:"account_number" validate:"required,min=5,max=30"`
	AccountTitle  string `json:"account_title" validate:"required,min=3,max=100"`
}

// RequestWithdrawal records a pending funds-out request. The wallet is
// NOT debited here; that happens exactly once when an admin approves.
func RequestWithdrawal(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	settings, err := database.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load settings"})
	}

	activeReferrals := 0
	if settings.ReferralGateEnabled {
		activeReferrals = services.ActiveReferralCount(database.DB, userID)
	}

	if rejection := services.ValidateWithdrawal(req.Amount, user.WalletBalance, activeReferrals, user.KYCStatus, settings); rejection != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  rejection.Reason,
			"message": rejection.Message,
		})
	}

	withdrawal := models.Withdrawal{
		UserID:        userID,
		Amount:        req.Amount,
		Method:        req.Method,
		AccountNumber: req.AccountNumber,
		AccountTitle:  req.AccountTitle,
		Status:        "pending",
		RequestedAt:   time.Now(),
	}
	if err := database.DB.Create(&withdrawal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record withdrawal request"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Withdrawal request submitted for review.",
		"data":    withdrawal,
	})
}

func GetMyWithdrawals(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var withdrawals []models.Withdrawal
	database.DB.Where("user_id = ?", userID).
		Order("requested_at desc").
		Find(&withdrawals)

	return c.JSON(fiber.Map{"success": true, "data": withdrawals})
}
