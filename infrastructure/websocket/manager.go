package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

// Conn is the part of a websocket connection the manager writes to
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

const clientSendBuffer = 32

type client struct {
	conn   Conn
	userID uuid.UUID
	room   string
	send   chan []byte
	done   chan struct{}
}

// WebSocketManager fans attendance events out to dashboards subscribed to a branch room
type WebSocketManager struct {
	mu      sync.RWMutex
	clients map[Conn]*client
	rooms   map[string]map[*client]struct{}
}

// Manager is the process-wide instance used by the websocket route
var Manager = NewWebSocketManager()

var _ services.AttendanceNotifier = (*WebSocketManager)(nil)

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[Conn]*client),
		rooms:   make(map[string]map[*client]struct{}),
	}
}

// RegisterClient subscribes conn to room and starts its writer
func (m *WebSocketManager) RegisterClient(conn Conn, userID uuid.UUID, room string) {
	c := &client{
		conn:   conn,
		userID: userID,
		room:   room,
		send:   make(chan []byte, clientSendBuffer),
		done:   make(chan struct{}),
	}

	m.mu.Lock()
	m.clients[conn] = c
	if m.rooms[room] == nil {
		m.rooms[room] = make(map[*client]struct{})
	}
	m.rooms[room][c] = struct{}{}
	m.mu.Unlock()

	go c.writeLoop()

	logger.WebSocket("client_registered", "Client joined room", map[string]interface{}{
		"user_id": userID.String(),
		"room":    room,
	})
}

// UnregisterClient removes conn and stops its writer
func (m *WebSocketManager) UnregisterClient(conn Conn) {
	m.mu.Lock()
	c, ok := m.clients[conn]
	if ok {
		delete(m.clients, conn)
		if members := m.rooms[c.room]; members != nil {
			delete(members, c)
			if len(members) == 0 {
				delete(m.rooms, c.room)
			}
		}
	}
	m.mu.Unlock()

	if ok {
		close(c.done)
		logger.WebSocket("client_unregistered", "Client left room", map[string]interface{}{
			"user_id": c.userID.String(),
			"room":    c.room,
		})
	}
}

func (c *client) writeLoop() {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.WebSocketError("write_message", "WebSocket write error", err, map[string]interface{}{"user_id": c.userID.String()})
				return
			}
		case <-c.done:
			return
		}
	}
}

// BroadcastToRoom queues data for every client in room. Slow clients drop messages.
func (m *WebSocketManager) BroadcastToRoom(room string, data []byte) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	delivered := 0
	for c := range m.rooms[room] {
		select {
		case c.send <- data:
			delivered++
		default:
			logger.Warn(logger.CategoryWebSocket, "message_dropped", "Client send buffer full", map[string]interface{}{
				"user_id": c.userID.String(),
				"room":    room,
			})
		}
	}
	return delivered
}

// Publish sends an attendance event to the branch room
func (m *WebSocketManager) Publish(event services.AttendanceEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.WebSocketError("marshal_event", "Failed to encode event", err, map[string]interface{}{"type": event.Type})
		return
	}
	m.BroadcastToRoom(event.BranchID.String(), data)
}

// RoomSize returns the number of clients in room
func (m *WebSocketManager) RoomSize(room string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[room])
}

// ClientCount returns the number of connected clients
func (m *WebSocketManager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

type inboundMessage struct {
	Type string `json:"type"`
}

// HandleWebSocketMessage answers client pings. Dashboards are otherwise receive-only.
func (m *WebSocketManager) HandleWebSocketMessage(conn Conn, messageType int, message []byte) {
	if messageType != websocket.TextMessage {
		return
	}
	var msg inboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return
	}
	if msg.Type != "ping" {
		return
	}

	m.mu.RLock()
	c, ok := m.clients[conn]
	m.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case c.send <- []byte(`{"type":"pong"}`):
	default:
	}
}
