package dto

import (
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
)

type RegisterDeviceRequest struct {
	DeviceFingerprint string `json:"device_fingerprint" validate:"required,max=255"`
	DeviceName        string `json:"device_name" validate:"required,max=100"`
}

type RegisterDeviceResponse struct {
	DeviceID uuid.UUID `json:"device_id"`
}

type DeviceCheckResponse struct {
	Registered bool   `json:"registered"`
	DeviceName string `json:"device_name,omitempty"`
}

type DeviceResponse struct {
	ID                uuid.UUID  `json:"id"`
	BranchID          uuid.UUID  `json:"branch_id"`
	DeviceFingerprint string     `json:"device_fingerprint"`
	DeviceName        string     `json:"device_name"`
	IsActive          bool       `json:"is_active"`
	RegisteredBy      *uuid.UUID `json:"registered_by,omitempty"`
	RegisteredAt      time.Time  `json:"registered_at"`
	LastUsed          *time.Time `json:"last_used,omitempty"`
}

func DeviceCheckToResponse(c *services.DeviceCheck) *DeviceCheckResponse {
	return &DeviceCheckResponse{Registered: c.Registered, DeviceName: c.DeviceName}
}

func DevicesToResponse(devices []models.AttendanceDevice) []*DeviceResponse {
	result := make([]*DeviceResponse, len(devices))
	for i, d := range devices {
		result[i] = &DeviceResponse{
			ID:                d.ID,
			BranchID:          d.BranchID,
			DeviceFingerprint: d.DeviceFingerprint,
			DeviceName:        d.DeviceName,
			IsActive:          d.IsActive,
			RegisteredBy:      d.RegisteredBy,
			RegisteredAt:      d.RegisteredAt,
			LastUsed:          d.LastUsed,
		}
	}
	return result
}
