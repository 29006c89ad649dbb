package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func KYCRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	kyc := api.Group("/kyc", middleware.Protected())
	kyc.Post("", handlers.SubmitKYC)
	kyc.Get("/me", handlers.GetMyKYC)
}
