package repositories

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type AttendanceDeviceRepository interface {
	Create(ctx context.Context, device *models.AttendanceDevice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AttendanceDevice, error)

	// Returns nil, nil for unknown fingerprints.
	GetByFingerprint(ctx context.Context, fingerprint string) (*models.AttendanceDevice, error)

	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]models.AttendanceDevice, error)
	Update(ctx context.Context, device *models.AttendanceDevice) error
}
