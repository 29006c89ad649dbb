package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func TaskRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tasks := api.Group("/tasks", middleware.Protected())
	tasks.Get("/today", handlers.GetDailyTask)
	tasks.Post("/submit", handlers.SubmitTask)
	tasks.Get("/submissions", handlers.GetMySubmissions)
}
