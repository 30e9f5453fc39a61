package routes

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/interfaces/api/handlers"
	"barbershop-attendance/interfaces/api/middleware"
)

func SetupEnrollmentRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	enrollments := api.Group("/enrollments", middleware.Protected(jwtSecret))

	enrollments.Get("/active", h.Enrollment.GetActive)
	enrollments.Get("/status", h.Enrollment.GetStatus)
	enrollments.Get("/branches/:branch_id", h.Enrollment.ListByBranch)

	enrollments.Post("/", middleware.AdminOnly(), h.Enrollment.Enroll)
	enrollments.Delete("/", middleware.AdminOnly(), h.Enrollment.Revoke)
}
