package routes

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/interfaces/api/handlers"
	"barbershop-attendance/interfaces/api/middleware"
	"barbershop-attendance/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config) {
	// Setup health and root routes
	SetupHealthRoutes(app, h.Health)

	// API version group
	api := app.Group("/api/v1")
	api.Use(middleware.RateLimiter(&cfg.RateLimit))

	SetupAttendanceRoutes(api, h, cfg.JWT.Secret)
	SetupEnrollmentRoutes(api, h, cfg.JWT.Secret)
	SetupAttendanceConfigRoutes(api, h, cfg.JWT.Secret)
	SetupDeviceRoutes(api, h, cfg.JWT.Secret)
	SetupLogRoutes(api, h, cfg.JWT.Secret)

	// Setup WebSocket routes (needs app, not api group)
	SetupWebSocketRoutes(app, cfg.JWT.Secret)
}
