package handlers

import (
	"log"
	"time"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/taskpay/taskpay_backend/database"
	"github.com/taskpay/taskpay_backend/models"
	"github.com/taskpay/taskpay_backend/websocket"
)

func GetMyNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var items []models.Notification
	database.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(50).
		Find(&items)

	return c.JSON(fiber.Map{"success": true, "data": items})
}

func MarkNotificationsRead(c *fiber.Ctx) error {
	userID := currentUserID(c)

	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now()).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update notifications"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Notifications marked as read"})
}

// ServeWs upgrades the connection and keeps it registered with the hub
// until the client goes away. The first frame must be an auth message.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"success": false, "message": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"success": false, "message": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"success": false, "message": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	// the notification stream is one-way; drain frames until close
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}
	}
}
