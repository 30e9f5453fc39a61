package repositories

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type AttendanceConfigRepository interface {
	// Returns nil, nil when the branch has no stored config.
	GetByBranch(ctx context.Context, branchID uuid.UUID) (*models.AttendanceConfig, error)
	Create(ctx context.Context, config *models.AttendanceConfig) error
	Update(ctx context.Context, config *models.AttendanceConfig) error
}
