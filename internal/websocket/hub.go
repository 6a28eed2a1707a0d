package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"taskboard/internal/models"
)

// TaskEvent is the payload broadcast to connected clients whenever a task is
// created, updated or deleted.
type TaskEvent struct {
	Action string      `json:"action"`
	Task   models.Task `json:"task"`
}

// Client is one WebSocket connection.
type Client struct {
	Conn *websocket.Conn
	Mu   sync.Mutex
}

// Hub fans task events out to all connected clients.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// NotifyTask implements the task service's notifier. The send never blocks a
// request: when the buffer is full the event is dropped.
func (h *Hub) NotifyTask(action string, task models.Task) {
	payload, err := json.Marshal(TaskEvent{Action: action, Task: task})
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}

// Run owns the client set. Register, unregister and broadcast are serialized
// through this loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.Mu.Unlock()
				if err != nil {
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
