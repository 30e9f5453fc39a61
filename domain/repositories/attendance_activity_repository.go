package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type AttendanceActivityRepository interface {
	Create(ctx context.Context, activity *models.AttendanceActivity) error

	// Get activities by branch with pagination
	GetByBranch(ctx context.Context, branchID uuid.UUID, offset, limit int) ([]models.AttendanceActivity, int64, error)

	GetByShift(ctx context.Context, shiftID uuid.UUID) ([]models.AttendanceActivity, error)

	// Delete entries created before cutoff (retention cleanup)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
