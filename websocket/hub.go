package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/taskpay/taskpay_backend/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Push = make(chan *models.Notification)

// RunHub delivers notifications to the owning worker's live connection.
// A worker who is offline simply picks the notification up from the
// list endpoint later; delivery here is best effort.
func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
			log.Printf("Notification client registered: %s", client.UserID)
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
			log.Printf("Notification client unregistered: %s", client.UserID)
		case notification := <-Push:
			clientsMu.RLock()
			conn, ok := clients[notification.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(notification); err != nil {
				log.Printf("Error pushing notification to %s: %v", notification.UserID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, notification.UserID)
				clientsMu.Unlock()
			}
		}
	}
}

// Notify persists nothing; callers store the row first and then hand it
// here without blocking the request path.
func Notify(notification *models.Notification) {
	select {
	case Push <- notification:
	default:
		log.Printf("Notification hub busy, dropping live push for %s", notification.UserID)
	}
}
