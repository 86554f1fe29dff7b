package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to connected clients.
const (
	EventNotification = "notification"
	EventOrderUpdate  = "order_update"
	EventPickupUpdate = "pickup_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks authenticated websocket connections per user so that
// notifications can be pushed the moment they are produced.
type Hub struct {
	clients map[*websocket.Conn]uint // conn -> userId
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]uint),
	}
}

// Register adds a connection for the given user.
func (h *Hub) Register(conn *websocket.Conn, userID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = userID
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// SendToUser pushes an event to every open connection of one user.
// Delivery is best-effort; a dead connection is dropped on write error.
func (h *Hub) SendToUser(userID uint, event string, data interface{}) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return
	}

	for conn, id := range h.clients {
		if id != userID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
