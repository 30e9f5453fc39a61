package serviceimpl_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-attendance/application/serviceimpl"
	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/infrastructure/postgres"
	"barbershop-attendance/pkg/testutil"
)

func newConfigService(t *testing.T) services.AttendanceConfigService {
	db := testutil.NewTestDB(t)
	return serviceimpl.NewAttendanceConfigService(postgres.NewAttendanceConfigRepository(db))
}

func TestAttendanceConfigService_DefaultsWhenMissing(t *testing.T) {
	svc := newConfigService(t)
	branchID := uuid.New()

	cfg, err := svc.GetConfig(context.Background(), branchID)
	require.NoError(t, err)

	assert.Nil(t, cfg.ConfigID)
	assert.Equal(t, branchID, cfg.BranchID)
	assert.False(t, cfg.FREnabled)
	assert.Equal(t, 0.65, cfg.AutoApproveThreshold)
	assert.Equal(t, 0.50, cfg.AdminReviewThreshold)
	assert.True(t, cfg.LivenessRequired)
	assert.False(t, cfg.GeofenceEnabled)
	assert.Equal(t, float64(100), cfg.GeofenceRadiusMeters)
	assert.False(t, cfg.DeviceLockEnabled)
	assert.NotNil(t, cfg.BarberOverrides)
	assert.Empty(t, cfg.BarberOverrides)

	enabled, err := svc.IsFREnabled(context.Background(), branchID)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestAttendanceConfigService_SaveCreatesThenPatches(t *testing.T) {
	svc := newConfigService(t)
	ctx := context.Background()
	branchID := uuid.New()
	barberID := uuid.New()

	id, err := svc.SaveConfig(ctx, branchID, models.AttendanceConfigPatch{
		FREnabled:            true,
		AutoApproveThreshold: ptr(0.8),
		GeofenceEnabled:      ptr(true),
		BarberOverrides:      []models.BarberOverride{{BarberID: barberID, FRExempt: true}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	// Fields left nil keep their stored values
	again, err := svc.SaveConfig(ctx, branchID, models.AttendanceConfigPatch{
		FREnabled:            true,
		AdminReviewThreshold: ptr(0.6),
	})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	cfg, err := svc.GetConfig(ctx, branchID)
	require.NoError(t, err)
	require.NotNil(t, cfg.ConfigID)
	assert.Equal(t, id, *cfg.ConfigID)
	assert.True(t, cfg.FREnabled)
	assert.Equal(t, 0.8, cfg.AutoApproveThreshold)
	assert.Equal(t, 0.6, cfg.AdminReviewThreshold)
	assert.True(t, cfg.GeofenceEnabled)
	assert.True(t, cfg.IsFRExempt(models.BarberSubject(barberID)))
	assert.False(t, cfg.IsFRExempt(models.StaffSubject(barberID)))

	enabled, err := svc.IsFREnabled(ctx, branchID)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestAttendanceConfigService_RejectsBadThresholds(t *testing.T) {
	svc := newConfigService(t)
	ctx := context.Background()

	tests := []models.AttendanceConfigPatch{
		{AutoApproveThreshold: ptr(1.2)},
		{AdminReviewThreshold: ptr(-0.1)},
		{AutoApproveThreshold: ptr(0.5), AdminReviewThreshold: ptr(0.7)},
		{GeofenceRadiusMeters: ptr(0.0)},
	}
	for _, patch := range tests {
		_, err := svc.SaveConfig(ctx, uuid.New(), patch)
		var attErr *services.AttendanceError
		if assert.ErrorAs(t, err, &attErr) {
			assert.Equal(t, services.CodeValidation, attErr.Code)
		}
	}
}

func TestAttendanceConfigService_RejectsThresholdCrossingStoredValue(t *testing.T) {
	svc := newConfigService(t)
	ctx := context.Background()
	branchID := uuid.New()
	assertValidation := func(err error) {
		t.Helper()
		var attErr *services.AttendanceError
		if assert.ErrorAs(t, err, &attErr) {
			assert.Equal(t, services.CodeValidation, attErr.Code)
		}
	}

	// Against the default auto-approve threshold
	_, err := svc.SaveConfig(ctx, branchID, models.AttendanceConfigPatch{AdminReviewThreshold: ptr(0.9)})
	assertValidation(err)

	_, err = svc.SaveConfig(ctx, branchID, models.AttendanceConfigPatch{FREnabled: true, AutoApproveThreshold: ptr(0.8)})
	require.NoError(t, err)

	// Against the stored auto-approve threshold
	_, err = svc.SaveConfig(ctx, branchID, models.AttendanceConfigPatch{FREnabled: true, AdminReviewThreshold: ptr(0.85)})
	assertValidation(err)
	_, err = svc.SaveConfig(ctx, branchID, models.AttendanceConfigPatch{FREnabled: true, AutoApproveThreshold: ptr(0.4)})
	assertValidation(err)

	cfg, err := svc.GetConfig(ctx, branchID)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.AutoApproveThreshold)
	assert.Equal(t, models.DefaultAdminReviewThreshold, cfg.AdminReviewThreshold)

	_, err = svc.SaveConfig(ctx, branchID, models.AttendanceConfigPatch{FREnabled: true, AdminReviewThreshold: ptr(0.8)})
	assert.NoError(t, err)
}
