package serviceimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
)

type ReconcileResult struct {
	ActiveShift       *models.Shift // fresh approved open shift, if any
	AutoClosed        bool
	AutoClosedShiftID *uuid.UUID
	AutoClosedShifts  []models.Shift
}

// ShiftReconciler closes abandoned shifts before a new clock-in is considered.
// It must run inside the caller's transaction and subject lock.
type ShiftReconciler struct {
	shiftRepo repositories.ShiftRepository
	now       services.Clock
}

func NewShiftReconciler(shiftRepo repositories.ShiftRepository, now services.Clock) *ShiftReconciler {
	return &ShiftReconciler{shiftRepo: shiftRepo, now: now}
}

// Reconcile walks the subject's open shifts oldest first. A pending clock-in blocks with
// PENDING_REQUEST. An approved shift older than StaleShiftThreshold is closed at the start of
// the following local day; a younger one is returned as the active shift.
func (r *ShiftReconciler) Reconcile(ctx context.Context, subject models.Subject) (*ReconcileResult, error) {
	open, err := r.shiftRepo.GetOpenBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load open shifts: %w", err)
	}

	now := r.now()
	result := &ReconcileResult{}

	for i := range open {
		shift := open[i]

		switch shift.EffectiveStatus() {
		case models.ShiftStatusPendingIn:
			return nil, services.ErrPendingRequest

		case models.ShiftStatusApprovedIn:
			if !shift.IsStale(now) {
				result.ActiveShift = &shift
				return result, nil
			}

			closeAt := models.AutoCloseTime(shift.ClockIn)
			if err := r.shiftRepo.Close(ctx, shift.ID, repositories.ShiftClose{
				ClockOut: closeAt,
				Status:   models.ShiftStatusApprovedOut,
			}); err != nil {
				return nil, fmt.Errorf("failed to auto-close shift %s: %w", shift.ID, err)
			}

			shift.ClockOut = &closeAt
			shift.Status = models.ShiftStatusApprovedOut
			id := shift.ID
			result.AutoClosed = true
			result.AutoClosedShiftID = &id
			result.AutoClosedShifts = append(result.AutoClosedShifts, shift)
		}
	}

	return result, nil
}
