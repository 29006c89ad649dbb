package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/taskpay/taskpay_backend/handlers"
	"github.com/taskpay/taskpay_backend/middleware"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("", handlers.GetMyNotifications)
	notifications.Put("/read", handlers.MarkNotificationsRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
