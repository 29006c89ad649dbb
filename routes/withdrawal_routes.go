package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func WithdrawalRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	withdrawals := api.Group("/withdrawals", middleware.Protected())
	withdrawals.Post("", handlers.RequestWithdrawal)
	withdrawals.Get("/me", handlers.GetMyWithdrawals)
}
