package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

type AttendanceActivityServiceImpl struct {
	activityRepo repositories.AttendanceActivityRepository
	now          services.Clock
}

func NewAttendanceActivityService(activityRepo repositories.AttendanceActivityRepository, now services.Clock) services.AttendanceActivityService {
	return &AttendanceActivityServiceImpl{
		activityRepo: activityRepo,
		now:          now,
	}
}

func (s *AttendanceActivityServiceImpl) Record(ctx context.Context, activity *models.AttendanceActivity) {
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		logger.AttendanceError("activity_record_failed", "Failed to record attendance activity", err, map[string]interface{}{
			"shift_id": activity.ShiftID.String(),
			"type":     string(activity.ActivityType),
		})
	}
}

func (s *AttendanceActivityServiceImpl) GetByBranch(ctx context.Context, branchID uuid.UUID, page, limit int) ([]models.AttendanceActivity, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return s.activityRepo.GetByBranch(ctx, branchID, offset, limit)
}

func (s *AttendanceActivityServiceImpl) Cleanup(ctx context.Context, days int) (int64, error) {
	cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	return s.activityRepo.DeleteOlderThan(ctx, cutoff)
}
