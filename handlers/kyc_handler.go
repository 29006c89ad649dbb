package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"gorm.io/gorm"
)

var errAlreadyVerified = errors.New("already verified")

type SubmitKYCRequest struct {
	CNICNumber    string `json:"cnic_number" validate:"required,len=13,numeric"`
	DocumentFront string `json:"document_front" validate:"required,url"`
	DocumentBack  string `json:"document_back" validate:"required,url"`
}

// SubmitKYC files (or refiles after rejection) the identity documents.
// An approved record is final and cannot be resubmitted.
func SubmitKYC(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req SubmitKYCRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var record models.KYCRecord
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing := models.KYCRecord{}
		findErr := tx.Where("user_id = ?", userID).First(&existing).Error

		if findErr == nil {
			if existing.Status == "approved" {
				return errAlreadyVerified
			}
			existing.CNICNumber = req.CNICNumber
			existing.DocumentFront = req.DocumentFront
			existing.DocumentBack = req.DocumentBack
			existing.Status = "pending"
			existing.RejectionReason = nil
			existing.SubmittedAt = time.Now()
			existing.ReviewedAt = nil
			record = existing
			if err := tx.Save(&record).Error; err != nil {
				return err
			}
		} else if findErr == gorm.ErrRecordNotFound {
			record = models.KYCRecord{
				UserID:        userID,
				CNICNumber:    req.CNICNumber,
				DocumentFront: req.DocumentFront,
				DocumentBack:  req.DocumentBack,
				Status:        "pending",
				SubmittedAt:   time.Now(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		} else {
			return findErr
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).Update("kyc_status", "pending").Error
	})
	if err == errAlreadyVerified {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Your identity is already verified"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to submit KYC"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "KYC documents submitted for verification.",
		"data":    record,
	})
}

func GetMyKYC(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var record models.KYCRecord
	if err := database.DB.Where("user_id = ?", userID).First(&record).Error; err != nil {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	}
	return c.JSON(fiber.Map{"success": true, "data": record})
}
