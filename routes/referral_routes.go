package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func ReferralRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	referrals := api.Group("/referrals", middleware.Protected())
	referrals.Get("/me", handlers.GetMyReferrals)
	referrals.Get("/commissions", handlers.GetMyCommissions)
}
