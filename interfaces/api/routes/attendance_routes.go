package routes

import (
	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/interfaces/api/handlers"
	"barbershop-attendance/interfaces/api/middleware"
)

func SetupAttendanceRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	attendance := api.Group("/attendance", middleware.Protected(jwtSecret))

	// Kiosk clock events
	attendance.Post("/fr/clock-in", h.Attendance.FRClockIn)
	attendance.Post("/fr/clock-out", h.Attendance.FRClockOut)
	attendance.Post("/manual/clock-in", h.Attendance.ManualClockIn)

	attendance.Get("/status", h.Attendance.GetStatus)
	attendance.Get("/history", h.Attendance.GetHistory)

	// Admin dashboards
	branches := attendance.Group("/branches/:branch_id", middleware.AdminOnly())
	branches.Get("/", h.Attendance.GetBranchAttendance)
	branches.Get("/board", h.Attendance.GetBranchBoard)
	branches.Get("/activities", h.Attendance.GetBranchActivities)
}
