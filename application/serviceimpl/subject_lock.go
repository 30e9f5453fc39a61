package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

const defaultLockTimeout = 5 * time.Second

// withSubjectLock runs fn while holding the subject's lock. Waiting longer than
// timeout fails with LOCK_TIMEOUT.
func withSubjectLock(ctx context.Context, locker services.SubjectLocker, timeout time.Duration, subject models.Subject, fn func(ctx context.Context) error) error {
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	release, err := locker.Acquire(lockCtx, subject.String())
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			logger.Warn(logger.CategoryAttendance, "lock_timeout", "Timed out waiting for subject lock", map[string]interface{}{
				"subject": subject.String(),
			})
			return services.ErrLockTimeout
		}
		return fmt.Errorf("failed to acquire subject lock: %w", err)
	}
	defer release()

	return fn(ctx)
}
