package services

import (
	"context"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type AttendanceActivityService interface {
	// Record appends an entry. Failures are logged, never returned.
	Record(ctx context.Context, activity *models.AttendanceActivity)

	// GetByBranch returns activities for a branch with pagination
	GetByBranch(ctx context.Context, branchID uuid.UUID, page, limit int) ([]models.AttendanceActivity, int64, error)

	// Cleanup deletes activities older than the given number of days
	Cleanup(ctx context.Context, days int) (int64, error)
}
