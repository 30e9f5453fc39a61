package services

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type AttendanceConfigService interface {
	// GetConfig returns the branch policy with defaults filled in.
	GetConfig(ctx context.Context, branchID uuid.UUID) (*models.EffectiveAttendanceConfig, error)

	IsFREnabled(ctx context.Context, branchID uuid.UUID) (bool, error)

	// SaveConfig patches the stored row, or creates it. Returns the config id.
	SaveConfig(ctx context.Context, branchID uuid.UUID, patch models.AttendanceConfigPatch) (uuid.UUID, error)
}
