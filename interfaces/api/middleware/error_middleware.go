package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
	"barbershop-attendance/pkg/utils"
)

var attendanceStatus = map[string]int{
	services.CodeMissingID:        fiber.StatusBadRequest,
	services.CodeConsentRequired:  fiber.StatusBadRequest,
	services.CodeValidation:       fiber.StatusBadRequest,
	services.CodeBarberNotFound:   fiber.StatusNotFound,
	services.CodeUserNotFound:     fiber.StatusNotFound,
	services.CodeBranchNotFound:   fiber.StatusNotFound,
	services.CodeNotEnrolled:      fiber.StatusNotFound,
	services.CodeDeviceNotFound:   fiber.StatusNotFound,
	services.CodeLowConfidence:    fiber.StatusUnprocessableEntity,
	services.CodeAlreadyClockedIn: fiber.StatusConflict,
	services.CodeNotClockedIn:     fiber.StatusConflict,
	services.CodePendingRequest:   fiber.StatusConflict,
	services.CodeDeviceRegistered: fiber.StatusConflict,
	services.CodeLockTimeout:      fiber.StatusConflict,
}

// StatusForCode returns the HTTP status of an attendance error code.
func StatusForCode(code string) int {
	if status, ok := attendanceStatus[code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// errorStatus is the HTTP status ErrorHandler will write for err.
func errorStatus(err error) int {
	var attErr *services.AttendanceError
	if errors.As(err, &attErr) {
		return StatusForCode(attErr.Code)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var attErr *services.AttendanceError
		if errors.As(err, &attErr) {
			status := StatusForCode(attErr.Code)
			logger.Info(logger.CategoryAPI, "request_rejected", attErr.Message, map[string]interface{}{
				"code":   attErr.Code,
				"status": status,
				"path":   c.Path(),
				"method": c.Method(),
			})
			return utils.CodedErrorResponse(c, status, attErr.Code, attErr.Message)
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error(logger.CategoryAPI, "error_handler", "Request error occurred", err, map[string]interface{}{"status_code": code, "path": c.Path(), "method": c.Method()})
			return utils.ErrorResponse(c, code, "An internal error occurred", err)
		}

		return utils.ErrorResponse(c, code, fiberErr.Message, nil)
	}
}
