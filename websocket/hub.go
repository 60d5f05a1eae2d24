package websocket

import (
	"log"
	"sync"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// AppointmentEvent is pushed to connected vendor staff whenever an
// appointment for their vendor is created or changes status.
type AppointmentEvent struct {
	Type        string             `json:"type"`
	Appointment models.Appointment `json:"appointment"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *AppointmentEvent)

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			var ownerID uuid.UUID
			err := database.DB.
				Table("vendors").
				Where("id = ?", event.Appointment.VendorID).
				Pluck("owner_id", &ownerID).Error
			if err != nil {
				log.Printf("Error fetching vendor owner for appointment %s: %v", event.Appointment.ID, err)
				continue
			}

			clientsMu.RLock()
			conn, ok := clients[ownerID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}

			if err := conn.WriteJSON(event); err != nil {
				log.Printf("Error sending event to client %s: %v", ownerID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, ownerID)
				clientsMu.Unlock()
			}
		}
	}
}
