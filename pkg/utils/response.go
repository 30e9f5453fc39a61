package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CodedErrorResponse writes a failure envelope with an explicit error code.
func CodedErrorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// ErrorResponse derives the error code from the HTTP status. err is never exposed
// on 5xx responses.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil && status < fiber.StatusInternalServerError && message == "" {
		message = err.Error()
	}
	return CodedErrorResponse(c, status, StatusCode(status), message)
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	return CodedErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message)
}

func ForbiddenResponse(c *fiber.Ctx, message string) error {
	return CodedErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", message)
}

// StatusCode turns an HTTP status into an error code, e.g. 404 -> NOT_FOUND.
func StatusCode(status int) string {
	if status == fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	msg := fiberutils.StatusMessage(status)
	if msg == "" {
		return "ERROR"
	}
	msg = strings.ToUpper(msg)
	msg = strings.ReplaceAll(msg, "-", "_")
	return strings.ReplaceAll(msg, " ", "_")
}
