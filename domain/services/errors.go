package services

import "fmt"

// Error codes returned by the attendance core. They are part of the API contract.
const (
	CodeMissingID        = "MISSING_ID"
	CodeBarberNotFound   = "BARBER_NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeBranchNotFound   = "BRANCH_NOT_FOUND"
	CodeLowConfidence    = "LOW_CONFIDENCE"
	CodeAlreadyClockedIn = "ALREADY_CLOCKED_IN"
	CodeNotClockedIn     = "NOT_CLOCKED_IN"
	CodePendingRequest   = "PENDING_REQUEST"
	CodeConsentRequired  = "CONSENT_REQUIRED"
	CodeNotEnrolled      = "NOT_ENROLLED"
	CodeDeviceRegistered = "DEVICE_REGISTERED"
	CodeDeviceNotFound   = "DEVICE_NOT_FOUND"
	CodeLockTimeout      = "LOCK_TIMEOUT"
	CodeValidation       = "VALIDATION_ERROR"
)

// AttendanceError is a domain failure with a stable code. errors.Is matches on the code,
// so a sentinel also matches copies carrying a more specific message.
type AttendanceError struct {
	Code    string
	Message string
}

func (e *AttendanceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AttendanceError) Is(target error) bool {
	t, ok := target.(*AttendanceError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of the error with a different message.
func (e *AttendanceError) WithMessage(format string, args ...interface{}) *AttendanceError {
	return &AttendanceError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

func newAttendanceError(code, message string) *AttendanceError {
	return &AttendanceError{Code: code, Message: message}
}

var (
	ErrMissingID        = newAttendanceError(CodeMissingID, "either barber_id or user_id is required")
	ErrBarberNotFound   = newAttendanceError(CodeBarberNotFound, "barber not found")
	ErrUserNotFound     = newAttendanceError(CodeUserNotFound, "user not found")
	ErrBranchNotFound   = newAttendanceError(CodeBranchNotFound, "branch not found")
	ErrLowConfidence    = newAttendanceError(CodeLowConfidence, "face match confidence is too low, please try again or use manual clock-in")
	ErrAlreadyClockedIn = newAttendanceError(CodeAlreadyClockedIn, "already clocked in, please clock out first")
	ErrNotClockedIn     = newAttendanceError(CodeNotClockedIn, "not currently clocked in")
	ErrPendingRequest   = newAttendanceError(CodePendingRequest, "a request is already pending admin approval")
	ErrConsentRequired  = newAttendanceError(CodeConsentRequired, "consent is required for face enrollment")
	ErrNotEnrolled      = newAttendanceError(CodeNotEnrolled, "no active face enrollment found")
	ErrDeviceRegistered = newAttendanceError(CodeDeviceRegistered, "device is already registered to another branch")
	ErrDeviceNotFound   = newAttendanceError(CodeDeviceNotFound, "device not found")
	ErrLockTimeout      = newAttendanceError(CodeLockTimeout, "another clock action for this person is in progress, please retry")
)

// ValidationError builds a VALIDATION_ERROR carrying the offending detail.
func ValidationError(message string) *AttendanceError {
	return newAttendanceError(CodeValidation, message)
}
