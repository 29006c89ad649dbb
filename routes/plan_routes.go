package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func PlanRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// the catalogue is public so the landing page can render pricing
	api.Get("/plans", handlers.ListPlans)

	plans := api.Group("/plans", middleware.Protected())
	plans.Post("/purchase", handlers.PurchasePlan)

	api.Get("/subscriptions/me", middleware.Protected(), handlers.GetMySubscription)
}
