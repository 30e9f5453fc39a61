package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"barbershop-attendance/interfaces/api/middleware"
	websocketHandler "barbershop-attendance/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, jwtSecret string) {
	wsHandler := websocketHandler.NewWebSocketHandler()

	// Dashboards pass the JWT as ?token= since browsers cannot set headers on upgrade.
	// The feed carries the same data as the admin branch board.
	app.Use("/ws", middleware.OptionalWithQueryToken(jwtSecret), middleware.AdminOnly(), wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
