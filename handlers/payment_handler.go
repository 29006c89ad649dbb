package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
)

type WalletWebhookPayload struct {
	BillReference   string `json:"pp_BillReference"`
	TxnRefNo        string `json:"pp_TxnRefNo"`
	ResponseCode    string `json:"pp_ResponseCode"`
	ResponseMessage string `json:"pp_ResponseMessage"`
	RetrievalRefNo  string `json:"pp_RetreivalReferenceNo"`
}

// HandlePaymentWebhook receives the asynchronous gateway result for a
// wallet charge. It only settles the payment row; plan activation still
// goes through the admin approval queue.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	var payload WalletWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse webhook payload"})
	}

	log.Printf("Received wallet webhook for BillReference: %s, ResponseCode: %s",
		payload.BillReference, payload.ResponseCode)

	var payment models.Payment
	if err := database.DB.Where("id = ?", payload.BillReference).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Payment record not found"})
	}

	// webhooks retry; a settled row must not move again
	if payment.Status != "pending" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Webhook already processed"})
	}

	if payload.ResponseCode != "000" {
		payment.Status = "failed"
		database.DB.Save(&payment)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Acknowledged failed payment"})
	}

	payment.Status = "succeeded"
	if payload.RetrievalRefNo != "" {
		payment.ProviderTxnID = &payload.RetrievalRefNo
	}
	if payload.TxnRefNo != "" {
		payment.MerchantRequestID = &payload.TxnRefNo
	}
	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("🔥 CRITICAL: Error settling payment %s: %v", payment.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to process webhook"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Webhook processed successfully"})
}

func GetMyPayments(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var userPayments []models.Payment
	database.DB.Preload("Subscription.Plan").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&userPayments)

	return c.JSON(fiber.Map{"success": true, "data": userPayments})
}
