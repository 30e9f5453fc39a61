package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	websocketManager "barbershop-attendance/infrastructure/websocket"
	"barbershop-attendance/pkg/logger"
	"barbershop-attendance/pkg/utils"
)

type WebSocketHandler struct{}

func NewWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{}
}

// WebSocketUpgrade admits authenticated upgrade requests naming a valid branch_id.
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := uuid.Parse(c.Query("branch_id")); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "branch_id must be a valid UUID")
	}
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	// Set by OptionalWithQueryToken and required by AdminOnly
	user, ok := c.Locals("user").(*utils.UserContext)
	if !ok {
		_ = c.Close()
		return
	}
	userID := user.ID
	logger.WebSocket("dashboard_connected", "Dashboard connected", map[string]interface{}{
		"user_id": userID.String(),
		"role":    user.Role,
	})

	branchID := c.Query("branch_id")
	websocketManager.Manager.RegisterClient(c, userID, branchID)

	defer func() {
		websocketManager.Manager.UnregisterClient(c)
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WebSocketError("read_message", "WebSocket read error", err, map[string]interface{}{"user_id": userID.String()})
			break
		}

		websocketManager.Manager.HandleWebSocketMessage(c, messageType, message)
	}
}
