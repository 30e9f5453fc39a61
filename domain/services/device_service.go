package services

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type DeviceCheck struct {
	Registered bool
	DeviceName string
}

type DeviceService interface {
	// Register allow-lists a kiosk for a branch. Re-registering on the same branch
	// reactivates and renames the device.
	Register(ctx context.Context, branchID uuid.UUID, fingerprint, name string, registeredBy *uuid.UUID) (uuid.UUID, error)

	Check(ctx context.Context, branchID uuid.UUID, fingerprint string) (*DeviceCheck, error)
	Deactivate(ctx context.Context, deviceID uuid.UUID) error
	List(ctx context.Context, branchID uuid.UUID) ([]models.AttendanceDevice, error)
}
