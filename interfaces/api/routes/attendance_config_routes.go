package routes

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/interfaces/api/handlers"
	"barbershop-attendance/interfaces/api/middleware"
)

func SetupAttendanceConfigRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	cfg := api.Group("/attendance-config/:branch_id", middleware.Protected(jwtSecret))

	cfg.Get("/", h.Config.GetConfig)
	cfg.Get("/fr-enabled", h.Config.IsFREnabled)
	cfg.Put("/", middleware.AdminOnly(), h.Config.SaveConfig)
}
