package serviceimpl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-attendance/application/serviceimpl"
	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/infrastructure/postgres"
)

func TestShiftReconciler_IsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	reconciler := serviceimpl.NewShiftReconciler(postgres.NewShiftRepository(h.db), h.clock.Now)

	stale := h.fx.Shift(&models.Shift{
		BarberID: &h.barber.ID,
		BranchID: h.branch.ID,
		ClockIn:  base.Add(-48 * time.Hour),
		Status:   models.ShiftStatusApprovedIn,
	})

	first, err := reconciler.Reconcile(ctx, h.subject())
	require.NoError(t, err)
	assert.True(t, first.AutoClosed)
	assert.Equal(t, stale.ID, *first.AutoClosedShiftID)
	assert.Nil(t, first.ActiveShift)

	second, err := reconciler.Reconcile(ctx, h.subject())
	require.NoError(t, err)
	assert.False(t, second.AutoClosed)
	assert.Empty(t, second.AutoClosedShifts)
}

func TestShiftReconciler_ClosesEveryStaleShiftBeforeTheActiveOne(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	reconciler := serviceimpl.NewShiftReconciler(postgres.NewShiftRepository(h.db), h.clock.Now)

	older := h.fx.Shift(&models.Shift{BarberID: &h.barber.ID, BranchID: h.branch.ID, ClockIn: base.Add(-72 * time.Hour), Status: models.ShiftStatusApprovedIn})
	old := h.fx.Shift(&models.Shift{BarberID: &h.barber.ID, BranchID: h.branch.ID, ClockIn: base.Add(-48 * time.Hour), Status: models.ShiftStatusApprovedIn})
	fresh := h.fx.Shift(&models.Shift{BarberID: &h.barber.ID, BranchID: h.branch.ID, ClockIn: base.Add(-time.Hour), Status: models.ShiftStatusApprovedIn})

	result, err := reconciler.Reconcile(ctx, h.subject())
	require.NoError(t, err)
	require.NotNil(t, result.ActiveShift)
	assert.Equal(t, fresh.ID, result.ActiveShift.ID)
	require.Len(t, result.AutoClosedShifts, 2)
	assert.Equal(t, older.ID, result.AutoClosedShifts[0].ID)
	assert.Equal(t, old.ID, *result.AutoClosedShiftID)
}

func TestShiftReconciler_PendingClockInBlocks(t *testing.T) {
	h := newHarness(t)
	reconciler := serviceimpl.NewShiftReconciler(postgres.NewShiftRepository(h.db), h.clock.Now)

	h.fx.Shift(&models.Shift{BarberID: &h.barber.ID, BranchID: h.branch.ID, ClockIn: base.Add(-time.Hour), Status: models.ShiftStatusPendingIn})

	_, err := reconciler.Reconcile(context.Background(), h.subject())
	assert.ErrorIs(t, err, services.ErrPendingRequest)
}
