package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/notifications"
	"github.com/taskpay/taskpay_backend/services"
	"github.com/taskpay/taskpay_backend/websocket"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errAlreadyDecided = errors.New("request has already been decided")

// notifyUser writes the notification row, pushes it to a live socket if
// one is connected, and mails the worker.
func notifyUser(user models.User, notifType, title, body string) {
	notification := models.Notification{
		UserID: user.ID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("🔥 Failed to store notification for %s: %v", user.ID, err)
		return
	}
	websocket.Notify(&notification)
	go notifications.SendEmail(user.FullName, user.Email, title, fmt.Sprintf("<h1>%s</h1><p>%s</p>", title, body))
}

type DashboardAnalyticsResponse struct {
	TotalWorkers        int64         `json:"total_workers"`
	ActiveSubscriptions int64         `json:"active_subscriptions"`
	TotalRevenue        int64         `json:"total_revenue"`
	PendingPayments     int64         `json:"pending_payments"`
	PendingSubmissions  int64         `json:"pending_submissions"`
	PendingWithdrawals  int64         `json:"pending_withdrawals"`
	PendingKYC          int64         `json:"pending_kyc"`
	PaidOutTotal        int64         `json:"paid_out_total"`
	RecentSignups       []models.User `json:"recent_signups"`
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse

	database.DB.Model(&models.User{}).Where("role = ?", "worker").Count(&response.TotalWorkers)
	database.DB.Model(&models.Subscription{}).Where("status = ?", "active").Count(&response.ActiveSubscriptions)
	database.DB.Model(&models.Payment{}).Where("status = ?", "succeeded").
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&response.TotalRevenue)
	database.DB.Model(&models.Payment{}).Where("status = ?", "pending").Count(&response.PendingPayments)
	database.DB.Model(&models.Submission{}).Where("status = ?", "pending").Count(&response.PendingSubmissions)
	database.DB.Model(&models.Withdrawal{}).Where("status = ?", "pending").Count(&response.PendingWithdrawals)
	database.DB.Model(&models.KYCRecord{}).Where("status = ?", "pending").Count(&response.PendingKYC)
	database.DB.Model(&models.Withdrawal{}).Where("status = ?", "approved").
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&response.PaidOutTotal)
	database.DB.Where("role = ?", "worker").Order("created_at desc").Limit(5).Find(&response.RecentSignups)

	return c.JSON(fiber.Map{"success": true, "data": response})
}

func ListPendingPlanPurchases(c *fiber.Ctx) error {
	var pending []models.Payment
	database.DB.Preload("User").Preload("Subscription.Plan").
		Joins("JOIN subscriptions ON subscriptions.id = payments.subscription_id").
		Where("subscriptions.status = ?", "pending").
		Order("payments.created_at asc").
		Find(&pending)
	return c.JSON(fiber.Map{"success": true, "data": pending})
}

// ProcessPlanPurchase decides a pending plan purchase. Approval settles
// the payment, activates the subscription and retires any previous
// active one, so the worker always holds a single plan.
func ProcessPlanPurchase(c *fiber.Ctx) error {
	paymentID := c.Params("paymentId")

	type ProcessRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}
	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var payment models.Payment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("User").Preload("Subscription.Plan").
			First(&payment, "id = ?", paymentID).Error; err != nil {
			return gorm.ErrRecordNotFound
		}
		if payment.SubscriptionID == nil || payment.Subscription.Status != "pending" {
			return errAlreadyDecided
		}

		subscription := payment.Subscription
		if req.Decision == "approve" {
			if payment.Status == "pending" {
				// manual confirmation stands in for the gateway webhook
				payment.Status = "succeeded"
			}
			now := time.Now()
			expiry := now.AddDate(0, 0, subscription.Plan.ValidityDays)
			subscription.Status = "active"
			subscription.StartsAt = &now
			subscription.ExpiresAt = &expiry

			if err := tx.Model(&models.Subscription{}).
				Where("user_id = ? AND id <> ? AND status = ?", payment.UserID, subscription.ID, "active").
				Update("status", "expired").Error; err != nil {
				return err
			}
		} else {
			if payment.Status == "pending" {
				payment.Status = "failed"
			}
			subscription.Status = "rejected"
		}

		if err := tx.Model(&models.Payment{}).Where("id = ?", payment.ID).
			Update("status", payment.Status).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Subscription{}).Where("id = ?", subscription.ID).
			Updates(map[string]interface{}{
				"status":     subscription.Status,
				"starts_at":  subscription.StartsAt,
				"expires_at": subscription.ExpiresAt,
			}).Error
		if err == nil {
			payment.Subscription = subscription
		}
		return err
	})
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Payment record not found"})
	}
	if err == errAlreadyDecided {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "This plan purchase has already been decided"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to process plan purchase"})
	}

	if req.Decision == "approve" {
		notifyUser(payment.User, "plan", "Your Plan is Active!",
			fmt.Sprintf("Your %s plan has been approved. You can now complete up to %d tasks per day.",
				payment.Subscription.Plan.Name, payment.Subscription.Plan.DailyQuota))
	} else {
		notifyUser(payment.User, "plan", "Plan Purchase Rejected",
			"Your plan purchase could not be verified. Contact support if you believe this is a mistake.")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Plan purchase processed"})
}

func ListPendingSubmissions(c *fiber.Ctx) error {
	var pending []models.Submission
	database.DB.Preload("User").Preload("Task").
		Where("status = ?", "pending").
		Order("seq asc").
		Find(&pending)
	return c.JSON(fiber.Map{"success": true, "data": pending})
}

// ReviewSubmission decides a pending submission. Approval credits the
// task reward and fans commissions out to the upline, all in one
// transaction; a submission can never be approved twice.
func ReviewSubmission(c *fiber.Ctx) error {
	submissionID := c.Params("submissionId")

	type ReviewRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
		Notes    string `json:"notes"`
	}
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	settings, err := database.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load settings"})
	}

	var submission models.Submission
	var credits []services.CommissionCredit
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("User").
			First(&submission, "id = ?", submissionID).Error; err != nil {
			return gorm.ErrRecordNotFound
		}
		if submission.Status != "pending" {
			return errAlreadyDecided
		}

		now := time.Now()
		if req.Decision == "approve" {
			submission.Status = "approved"
		} else {
			submission.Status = "rejected"
		}
		if req.Notes != "" {
			submission.ReviewNotes = &req.Notes
		}
		submission.ReviewedAt = &now
		err := tx.Model(&models.Submission{}).Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"status":       submission.Status,
				"review_notes": submission.ReviewNotes,
				"reviewed_at":  submission.ReviewedAt,
			}).Error
		if err != nil {
			return err
		}

		if submission.Status != "approved" {
			return nil
		}

		err = tx.Model(&models.User{}).Where("id = ?", submission.UserID).
			Updates(map[string]interface{}{
				"wallet_balance": gorm.Expr("wallet_balance + ?", submission.Reward),
				"task_earnings":  gorm.Expr("task_earnings + ?", submission.Reward),
			}).Error
		if err != nil {
			return err
		}

		credits, err = services.AccrueCommissions(tx, submission, settings)
		return err
	})
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Submission not found"})
	}
	if err == errAlreadyDecided {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "This submission has already been reviewed"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to review submission"})
	}

	if submission.Status == "approved" {
		notifyUser(submission.User, "submission", "Task Approved",
			fmt.Sprintf("Your submission was approved. Rs. %d has been added to your wallet.", submission.Reward))
		for _, credit := range credits {
			notifyUser(credit.Earner, "commission", "Referral Commission Earned",
				fmt.Sprintf("You earned Rs. %d (level %d) from your referral network.", credit.Amount, credit.Level))
		}
	} else {
		reason := "It did not meet the task requirements."
		if req.Notes != "" {
			reason = req.Notes
		}
		notifyUser(submission.User, "submission", "Task Rejected",
			fmt.Sprintf("Your submission was rejected. %s", reason))
	}

	return c.JSON(fiber.Map{"success": true, "message": "Submission reviewed"})
}

func ListPendingWithdrawals(c *fiber.Ctx) error {
	var pending []models.Withdrawal
	database.DB.Preload("User").
		Where("status = ?", "pending").
		Order("requested_at asc").
		Find(&pending)
	return c.JSON(fiber.Map{"success": true, "data": pending})
}

// ProcessWithdrawal decides a pending withdrawal. Approval debits the
// wallet exactly once under a row lock; rejection leaves the balance
// untouched. A decided request can never flip.
func ProcessWithdrawal(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	type ProcessRequest struct {
		Decision   string `json:"decision" validate:"required,oneof=approve reject"`
		AdminNotes string `json:"admin_notes"`
	}
	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var withdrawal models.Withdrawal
	errInsufficient := errors.New("wallet balance no longer covers this withdrawal")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("User").
			First(&withdrawal, "id = ?", requestID).Error; err != nil {
			return gorm.ErrRecordNotFound
		}
		if withdrawal.Status != "pending" {
			return errAlreadyDecided
		}

		now := time.Now()
		if req.AdminNotes != "" {
			withdrawal.AdminNotes = &req.AdminNotes
		}
		withdrawal.ProcessedAt = &now

		if req.Decision == "approve" {
			var user models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&user, "id = ?", withdrawal.UserID).Error; err != nil {
				return err
			}
			if user.WalletBalance < withdrawal.Amount {
				return errInsufficient
			}
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("wallet_balance", gorm.Expr("wallet_balance - ?", withdrawal.Amount)).Error; err != nil {
				return err
			}
			withdrawal.Status = "approved"
		} else {
			withdrawal.Status = "rejected"
		}

		return tx.Model(&models.Withdrawal{}).Where("id = ?", withdrawal.ID).
			Updates(map[string]interface{}{
				"status":       withdrawal.Status,
				"admin_notes":  withdrawal.AdminNotes,
				"processed_at": withdrawal.ProcessedAt,
			}).Error
	})
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Withdrawal request not found"})
	}
	if err == errAlreadyDecided {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "This withdrawal has already been decided"})
	}
	if err == errInsufficient {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to process withdrawal"})
	}

	if withdrawal.Status == "approved" {
		notifyUser(withdrawal.User, "withdrawal", "Withdrawal Approved",
			fmt.Sprintf("Rs. %d has been sent to your %s account %s.", withdrawal.Amount, withdrawal.Method, withdrawal.AccountNumber))
	} else {
		reason := "Contact support for details."
		if req.AdminNotes != "" {
			reason = req.AdminNotes
		}
		notifyUser(withdrawal.User, "withdrawal", "Withdrawal Rejected",
			fmt.Sprintf("Your withdrawal request for Rs. %d was rejected. %s", withdrawal.Amount, reason))
	}

	return c.JSON(fiber.Map{"success": true, "message": "Withdrawal request processed"})
}

func ListPendingKYC(c *fiber.Ctx) error {
	var pending []models.KYCRecord
	database.DB.Preload("User").
		Where("status = ?", "pending").
		Order("submitted_at asc").
		Find(&pending)
	return c.JSON(fiber.Map{"success": true, "data": pending})
}

func ReviewKYC(c *fiber.Ctx) error {
	recordID := c.Params("recordId")

	type ReviewRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
		Reason   string `json:"reason"`
	}
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var record models.KYCRecord
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").First(&record, "id = ?", recordID).Error; err != nil {
			return gorm.ErrRecordNotFound
		}
		if record.Status != "pending" {
			return errAlreadyDecided
		}

		now := time.Now()
		record.ReviewedAt = &now
		if req.Decision == "approve" {
			record.Status = "approved"
		} else {
			record.Status = "rejected"
			if req.Reason != "" {
				record.RejectionReason = &req.Reason
			}
		}
		err := tx.Model(&models.KYCRecord{}).Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"status":           record.Status,
				"rejection_reason": record.RejectionReason,
				"reviewed_at":      record.ReviewedAt,
			}).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", record.UserID).
			Update("kyc_status", record.Status).Error
	})
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "KYC record not found"})
	}
	if err == errAlreadyDecided {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "This KYC record has already been reviewed"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to review KYC record"})
	}

	if record.Status == "approved" {
		notifyUser(record.User, "kyc", "Identity Verified", "Your KYC verification is complete. Withdrawals are now unlocked.")
	} else {
		notifyUser(record.User, "kyc", "KYC Rejected", "Your identity documents could not be verified. Please resubmit clearer copies.")
	}

	return c.JSON(fiber.Map{"success": true, "message": "KYC record reviewed"})
}

func GetAllUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.User{}).Where("role = ?", "worker")
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Order("created_at desc").Offset(offset).Limit(limit).Find(&users)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"users": users,
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ToggleUserStatus flips the soft-delete flag. Accounts are never hard
// deleted; their ledger history must survive.
func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": user.ID, "is_active": user.IsActive}})
}

type PlanRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Price        int64  `json:"price" validate:"required,gt=0"`
	DailyQuota   int    `json:"daily_quota" validate:"required,gt=0"`
	ValidityDays int    `json:"validity_days" validate:"required,gt=0"`
}

func CreatePlan(c *fiber.Ctx) error {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	plan := models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		DailyQuota:   req.DailyQuota,
		ValidityDays: req.ValidityDays,
		IsActive:     true,
	}
	if err := database.DB.Create(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create plan"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": plan})
}

func UpdatePlan(c *fiber.Ctx) error {
	planID := c.Params("planId")

	var plan models.Plan
	if err := database.DB.First(&plan, "id = ?", planID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Plan not found"})
	}

	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	plan.Name = req.Name
	plan.Price = req.Price
	plan.DailyQuota = req.DailyQuota
	plan.ValidityDays = req.ValidityDays
	database.DB.Save(&plan)

	return c.JSON(fiber.Map{"success": true, "data": plan})
}

// DeactivatePlan hides a plan from the catalogue; existing
// subscriptions on it run out naturally.
func DeactivatePlan(c *fiber.Ctx) error {
	planID := c.Params("planId")

	result := database.DB.Model(&models.Plan{}).Where("id = ?", planID).Update("is_active", false)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to deactivate plan"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Plan not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Plan deactivated"})
}

func GetSiteSettings(c *fiber.Ctx) error {
	settings, err := database.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load settings"})
	}
	return c.JSON(fiber.Map{"success": true, "data": settings})
}

type UpdateSettingsRequest struct {
	PlatformName        *string `json:"platform_name"`
	MinWithdrawal       *int64  `json:"min_withdrawal" validate:"omitempty,gt=0"`
	ReferralGateEnabled *bool   `json:"referral_gate_enabled"`
	ReferralMinActive   *int    `json:"referral_min_active" validate:"omitempty,gte=0"`
	KYCRequired         *bool   `json:"kyc_required"`
	TaskWindowOpenHour  *int    `json:"task_window_open_hour" validate:"omitempty,gte=0,lte=23"`
	TaskWindowCloseHour *int    `json:"task_window_close_hour" validate:"omitempty,gte=1,lte=24"`
	Level1RatePct       *int    `json:"level1_rate_pct" validate:"omitempty,gte=0,lte=100"`
	Level2RatePct       *int    `json:"level2_rate_pct" validate:"omitempty,gte=0,lte=100"`
	Level3RatePct       *int    `json:"level3_rate_pct" validate:"omitempty,gte=0,lte=100"`
}

func UpdateSiteSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	settings, err := database.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load settings"})
	}

	if req.PlatformName != nil {
		settings.PlatformName = *req.PlatformName
	}
	if req.MinWithdrawal != nil {
		settings.MinWithdrawal = *req.MinWithdrawal
	}
	if req.ReferralGateEnabled != nil {
		settings.ReferralGateEnabled = *req.ReferralGateEnabled
	}
	if req.ReferralMinActive != nil {
		settings.ReferralMinActive = *req.ReferralMinActive
	}
	if req.KYCRequired != nil {
		settings.KYCRequired = *req.KYCRequired
	}
	if req.TaskWindowOpenHour != nil {
		settings.TaskWindowOpenHour = *req.TaskWindowOpenHour
	}
	if req.TaskWindowCloseHour != nil {
		settings.TaskWindowCloseHour = *req.TaskWindowCloseHour
	}
	if req.Level1RatePct != nil {
		settings.Level1RatePct = *req.Level1RatePct
	}
	if req.Level2RatePct != nil {
		settings.Level2RatePct = *req.Level2RatePct
	}
	if req.Level3RatePct != nil {
		settings.Level3RatePct = *req.Level3RatePct
	}

	if settings.TaskWindowOpenHour >= settings.TaskWindowCloseHour {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Task window must open before it closes"})
	}

	if err := database.DB.Save(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update settings"})
	}

	return c.JSON(fiber.Map{"success": true, "data": settings})
}

type DailyTaskRequest struct {
	Title    string `json:"title" validate:"required,min=5"`
	Body     string `json:"body" validate:"required,min=20"`
	Reward   int64  `json:"reward" validate:"required,gt=0"`
	TaskDate string `json:"task_date" validate:"required"`
}

func CreateDailyTask(c *fiber.Ctx) error {
	var req DailyTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	date, err := time.ParseInLocation("2006-01-02", req.TaskDate, services.PKT)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid task_date format. Use YYYY-MM-DD."})
	}

	task := models.DailyTask{
		Title:    req.Title,
		Body:     req.Body,
		Reward:   req.Reward,
		TaskDate: date,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "A task already exists for that date"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": task})
}

func ListDailyTasks(c *fiber.Ctx) error {
	var tasks []models.DailyTask
	database.DB.Order("task_date desc").Limit(60).Find(&tasks)
	return c.JSON(fiber.Map{"success": true, "data": tasks})
}

// GenerateTransactionReport streams a CSV of settled plan payments for
// the requested window.
func GenerateTransactionReport(c *fiber.Ctx) error {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid start_date format. Use YYYY-MM-DD."})
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid end_date format. Use YYYY-MM-DD."})
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	var settled []models.Payment
	database.DB.Preload("User").Preload("Subscription.Plan").
		Where("status = ? AND created_at BETWEEN ? AND ?", "succeeded", startDate, endDate).
		Order("created_at desc").
		Find(&settled)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	headers := []string{"Payment ID", "Date", "Worker", "Amount (Rs.)", "Provider", "Plan", "Gateway Ref"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to write CSV header"})
	}

	for _, p := range settled {
		gatewayRef := ""
		if p.ProviderTxnID != nil {
			gatewayRef = *p.ProviderTxnID
		}
		row := []string{
			p.ID.String(),
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.User.FullName,
			strconv.FormatInt(p.Amount, 10),
			p.Provider,
			p.Subscription.Plan.Name,
			gatewayRef,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to write CSV row"})
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s_to_%s.csv\"", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))

	return c.Send(b.Bytes())
}
