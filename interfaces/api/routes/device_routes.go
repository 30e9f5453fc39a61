package routes

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/interfaces/api/handlers"
	"barbershop-attendance/interfaces/api/middleware"
)

func SetupDeviceRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	devices := api.Group("/devices", middleware.Protected(jwtSecret))

	// Kiosk self-check
	devices.Get("/check", h.Device.Check)

	devices.Get("/branches/:branch_id", middleware.AdminOnly(), h.Device.List)
	devices.Post("/branches/:branch_id", middleware.AdminOnly(), h.Device.Register)
	devices.Post("/:device_id/deactivate", middleware.AdminOnly(), h.Device.Deactivate)
}
