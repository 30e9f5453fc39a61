package handlers

import (
	"barbershop-attendance/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	AttendanceService       services.AttendanceService
	AttendanceConfigService services.AttendanceConfigService
	AttendanceActivity      services.AttendanceActivityService
	EnrollmentService       services.EnrollmentService
	DeviceService           services.DeviceService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AttendanceHandler       *AttendanceHandler
	EnrollmentHandler       *EnrollmentHandler
	AttendanceConfigHandler *AttendanceConfigHandler
	DeviceHandler           *DeviceHandler
	LogHandler              *LogHandler
	HealthHandler           *HealthHandler

	// Short accessors for routes
	Attendance *AttendanceHandler
	Enrollment *EnrollmentHandler
	Config     *AttendanceConfigHandler
	Device     *DeviceHandler
	Log        *LogHandler
	Health     *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services, health *HealthHandler) *Handlers {
	attendanceHandler := NewAttendanceHandler(services.AttendanceService, services.AttendanceActivity)
	enrollmentHandler := NewEnrollmentHandler(services.EnrollmentService)
	configHandler := NewAttendanceConfigHandler(services.AttendanceConfigService)
	deviceHandler := NewDeviceHandler(services.DeviceService)
	logHandler := NewLogHandler()

	return &Handlers{
		AttendanceHandler:       attendanceHandler,
		EnrollmentHandler:       enrollmentHandler,
		AttendanceConfigHandler: configHandler,
		DeviceHandler:           deviceHandler,
		LogHandler:              logHandler,
		HealthHandler:           health,

		// Short accessors
		Attendance: attendanceHandler,
		Enrollment: enrollmentHandler,
		Config:     configHandler,
		Device:     deviceHandler,
		Log:        logHandler,
		Health:     health,
	}
}
