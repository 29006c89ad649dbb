package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// currentSubscription returns the newest non-rejected subscription, or
// nil when the worker never purchased one.
func currentSubscription(db *gorm.DB, userID uuid.UUID) *models.Subscription {
	var sub models.Subscription
	err := db.Preload("Plan").
		Where("user_id = ? AND status <> ?", userID, "rejected").
		Order("created_at desc").
		First(&sub).Error
	if err != nil {
		return nil
	}
	return &sub
}

// GetDailyTask runs the eligibility gate and, when it passes, returns
// the task published for today (PKT).
func GetDailyTask(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	settings, err := database.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load settings"})
	}

	sub := currentSubscription(database.DB, userID)
	doneToday := services.TodayCounter(user.TasksDoneToday, user.LastTaskDate)

	decision := services.CheckTaskAccess(sub, doneToday, settings)
	if !decision.Allowed() {
		return c.JSON(fiber.Map{"success": false, "status": decision.Status, "message": decision.Message})
	}

	var task models.DailyTask
	if err := database.DB.Where("task_date = ?", services.TodayPKT()).First(&task).Error; err != nil {
		return c.JSON(fiber.Map{"success": false, "status": services.StatusClosed, "message": "No task has been published for today yet."})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  services.StatusOpen,
		"data": fiber.Map{
			"topic":      task,
			"done_today": doneToday,
			"quota":      sub.Plan.DailyQuota,
		},
	})
}

type SubmitTaskRequest struct {
	ProofURL string `json:"proof_url" validate:"required,url"`
	Text     string `json:"text"`
}

// SubmitTask re-runs the gate, then records the proof and bumps the
// daily counter inside one transaction. The submission picks up a
// global sequence number for audit ordering.
func SubmitTask(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req SubmitTaskRequest
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

	var task models.DailyTask
	if err := database.DB.Where("task_date = ?", services.TodayPKT()).First(&task).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No task has been published for today"})
	}

	var submission models.Submission
	var rejection *services.GateDecision
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", userID).Error; err != nil {
			return errors.New("user not found")
		}

		sub := currentSubscription(tx, userID)
		doneToday := services.TodayCounter(user.TasksDoneToday, user.LastTaskDate)

		decision := services.CheckTaskAccess(sub, doneToday, settings)
		if !decision.Allowed() {
			rejection = &decision
			return nil
		}

		submission = models.Submission{
			UserID:    userID,
			TaskID:    task.ID,
			ProofURL:  req.ProofURL,
			WordCount: len(strings.Fields(req.Text)),
			Reward:    task.Reward,
		}
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		now := time.Now()
		user.TasksDoneToday = doneToday + 1
		user.LastTaskDate = &now
		return tx.Save(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record submission"})
	}
	if rejection != nil {
		return c.JSON(fiber.Map{"success": false, "status": rejection.Status, "message": rejection.Message})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Submission received and queued for review.",
		"data":    submission,
	})
}

func GetMySubmissions(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var submissions []models.Submission
	database.DB.Preload("Task").
		Where("user_id = ?", userID).
		Order("seq desc").
		Limit(100).
		Find(&submissions)

	return c.JSON(fiber.Map{"success": true, "data": submissions})
}
