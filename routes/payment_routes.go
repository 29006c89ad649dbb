package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// gateway callback, authenticated by merchant request id not JWT
	api.Post("/payments/webhook", handlers.HandlePaymentWebhook)

	api.Get("/payments/me", middleware.Protected(), handlers.GetMyPayments)
}
