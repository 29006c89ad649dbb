package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/payments"
	"gorm.io/gorm"
)

func ListPlans(c *fiber.Ctx) error {
	var plans []models.Plan
	database.DB.Where("is_active = ?", true).Order("price asc").Find(&plans)
	return c.JSON(fiber.Map{"success": true, "data": plans})
}

type PurchasePlanRequest struct {
	PlanID   string  `json:"plan_id" validate:"required,uuid4"`
	Provider string  `json:"provider" validate:"required,oneof=jazzcash easypaisa manual"`
	Phone    *string `json:"phone"`
	TxnRef   *string `json:"txn_ref"`
	ProofURL *string `json:"proof_url"`
}

// PurchasePlan opens a pending subscription plus its payment record.
// The jazzcash provider pushes a wallet prompt to the worker's phone;
// easypaisa and manual purchases carry a pasted transaction reference
// and proof screenshot instead. Activation always waits for an admin.
func PurchasePlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req PurchasePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if req.Provider != "jazzcash" && (req.TxnRef == nil || *req.TxnRef == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Provide the wallet transaction reference for this payment method"})
	}

	planID, _ := uuid.Parse(req.PlanID)
	var plan models.Plan
	if err := database.DB.Where("id = ? AND is_active = ?", planID, true).First(&plan).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Plan not found"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var payment models.Payment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var pendingCount int64
		tx.Model(&models.Subscription{}).Where("user_id = ? AND status = ?", userID, "pending").Count(&pendingCount)
		if pendingCount > 0 {
			return errors.New("you already have a plan purchase awaiting approval")
		}

		subscription := models.Subscription{
			UserID: userID,
			PlanID: plan.ID,
			Status: "pending",
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}

		payment = models.Payment{
			UserID:         userID,
			SubscriptionID: &subscription.ID,
			Amount:         plan.Price,
			Provider:       req.Provider,
			ProviderTxnID:  req.TxnRef,
			ProofURL:       req.ProofURL,
			Status:         "pending",
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	if req.Provider == "jazzcash" {
		phone := user.Phone
		if req.Phone != nil && *req.Phone != "" {
			phone = *req.Phone
		}
		if _, err := payments.InitiateWalletCharge(plan.Price, phone, payment.ID.String()); err != nil {
			log.Printf("🔥 Wallet charge initiation failed for payment %s: %v", payment.ID, err)
			payment.Status = "failed"
			database.DB.Save(&payment)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Could not reach the wallet gateway. Try again or pay manually."})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Plan purchase submitted. It will activate once an admin approves the payment.",
		"data":    payment,
	})
}

func GetMySubscription(c *fiber.Ctx) error {
	userID := currentUserID(c)

	sub := currentSubscription(database.DB, userID)
	if sub == nil {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	}
	return c.JSON(fiber.Map{"success": true, "data": sub})
}
