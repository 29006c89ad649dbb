package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/database"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// minimal public settings so the landing page can render
	api.Get("/site-info", func(c *fiber.Ctx) error {
		settings, err := database.GetSettings()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load settings"})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"platform_name":  settings.PlatformName,
				"min_withdrawal": settings.MinWithdrawal,
			},
		})
	})
}
