package scheduler

import (
	"context"

	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

const (
	ActivityRetentionJobID = "attendance_activity_retention"

	// 03:00 in the scheduler's location
	activityRetentionCron = "0 3 * * *"
)

// RegisterAttendanceJobs adds the background jobs of the attendance service.
func RegisterAttendanceJobs(s EventScheduler, activities services.AttendanceActivityService, retentionDays int) error {
	if retentionDays <= 0 {
		logger.Scheduler("retention_disabled", "Activity retention disabled", nil)
		return nil
	}

	return s.AddJob(ActivityRetentionJobID, activityRetentionCron, func(ctx context.Context) error {
		deleted, err := activities.Cleanup(ctx, retentionDays)
		if err != nil {
			return err
		}
		logger.Scheduler("activity_cleanup", "Old attendance activities removed", map[string]interface{}{
			"deleted":        deleted,
			"retention_days": retentionDays,
		})
		return nil
	})
}
