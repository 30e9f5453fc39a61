package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAttendanceConfig_EffectiveDefaults(t *testing.T) {
	branchID := uuid.New()

	var stored *AttendanceConfig
	eff := stored.Effective(branchID)

	assert.Nil(t, eff.ConfigID)
	assert.Equal(t, branchID, eff.BranchID)
	assert.False(t, eff.FREnabled)
	assert.Equal(t, 0.65, eff.AutoApproveThreshold)
	assert.Equal(t, 0.50, eff.AdminReviewThreshold)
	assert.True(t, eff.LivenessRequired)
	assert.False(t, eff.GeofenceEnabled)
	assert.Equal(t, float64(100), eff.GeofenceRadiusMeters)
	assert.False(t, eff.DeviceLockEnabled)
	assert.Empty(t, eff.BarberOverrides)
	assert.NotNil(t, eff.StaffOverrides)
}

func TestAttendanceConfig_EffectiveMergesStored(t *testing.T) {
	branchID := uuid.New()
	auto := 0.8
	liveness := false

	stored := &AttendanceConfig{
		ID:                   uuid.New(),
		BranchID:             branchID,
		FREnabled:            true,
		AutoApproveThreshold: &auto,
		LivenessRequired:     &liveness,
	}
	eff := stored.Effective(branchID)

	if assert.NotNil(t, eff.ConfigID) {
		assert.Equal(t, stored.ID, *eff.ConfigID)
	}
	assert.True(t, eff.FREnabled)
	assert.Equal(t, 0.8, eff.AutoApproveThreshold)
	assert.Equal(t, 0.50, eff.AdminReviewThreshold)
	assert.False(t, eff.LivenessRequired)
	assert.Equal(t, Thresholds{AutoApprove: 0.8, AdminReview: 0.5}, eff.Thresholds())
}

func TestAttendanceConfigPatch_ApplyKeepsUnsetFields(t *testing.T) {
	review := 0.55
	radius := 250.0
	stored := &AttendanceConfig{FREnabled: true, AdminReviewThreshold: &review}

	AttendanceConfigPatch{FREnabled: false, GeofenceRadiusMeters: &radius}.Apply(stored)

	assert.False(t, stored.FREnabled)
	if assert.NotNil(t, stored.AdminReviewThreshold) {
		assert.Equal(t, 0.55, *stored.AdminReviewThreshold)
	}
	if assert.NotNil(t, stored.GeofenceRadiusMeters) {
		assert.Equal(t, 250.0, *stored.GeofenceRadiusMeters)
	}
}

func TestEffectiveAttendanceConfig_IsFRExempt(t *testing.T) {
	barberID := uuid.New()
	userID := uuid.New()

	eff := DefaultAttendanceConfig(uuid.New())
	eff.BarberOverrides = []BarberOverride{{BarberID: barberID, FRExempt: true}}
	eff.StaffOverrides = []StaffOverride{{UserID: userID, FRExempt: false}}

	assert.True(t, eff.IsFRExempt(BarberSubject(barberID)))
	assert.False(t, eff.IsFRExempt(StaffSubject(userID)))
	assert.False(t, eff.IsFRExempt(BarberSubject(uuid.New())))
}
