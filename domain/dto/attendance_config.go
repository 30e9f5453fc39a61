package dto

import (
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

type SaveAttendanceConfigRequest struct {
	FREnabled            bool                    `json:"fr_enabled"`
	AutoApproveThreshold *float64                `json:"auto_approve_threshold" validate:"omitempty,gte=0,lte=1"`
	AdminReviewThreshold *float64                `json:"admin_review_threshold" validate:"omitempty,gte=0,lte=1"`
	LivenessRequired     *bool                   `json:"liveness_required"`
	GeofenceEnabled      *bool                   `json:"geofence_enabled"`
	GeofenceLat          *float64                `json:"geofence_lat" validate:"omitempty,gte=-90,lte=90"`
	GeofenceLng          *float64                `json:"geofence_lng" validate:"omitempty,gte=-180,lte=180"`
	GeofenceRadiusMeters *float64                `json:"geofence_radius_meters"`
	DeviceLockEnabled    *bool                   `json:"device_lock_enabled"`
	BarberOverrides      []models.BarberOverride `json:"barber_overrides"`
	StaffOverrides       []models.StaffOverride  `json:"staff_overrides"`
}

func (r *SaveAttendanceConfigRequest) ToPatch(updatedBy *uuid.UUID) models.AttendanceConfigPatch {
	return models.AttendanceConfigPatch{
		FREnabled:            r.FREnabled,
		AutoApproveThreshold: r.AutoApproveThreshold,
		AdminReviewThreshold: r.AdminReviewThreshold,
		LivenessRequired:     r.LivenessRequired,
		GeofenceEnabled:      r.GeofenceEnabled,
		GeofenceLat:          r.GeofenceLat,
		GeofenceLng:          r.GeofenceLng,
		GeofenceRadiusMeters: r.GeofenceRadiusMeters,
		DeviceLockEnabled:    r.DeviceLockEnabled,
		BarberOverrides:      r.BarberOverrides,
		StaffOverrides:       r.StaffOverrides,
		UpdatedBy:            updatedBy,
	}
}

type AttendanceConfigResponse struct {
	ID                   *uuid.UUID              `json:"id"`
	BranchID             uuid.UUID               `json:"branch_id"`
	FREnabled            bool                    `json:"fr_enabled"`
	AutoApproveThreshold float64                 `json:"auto_approve_threshold"`
	AdminReviewThreshold float64                 `json:"admin_review_threshold"`
	LivenessRequired     bool                    `json:"liveness_required"`
	GeofenceEnabled      bool                    `json:"geofence_enabled"`
	GeofenceLat          *float64                `json:"geofence_lat"`
	GeofenceLng          *float64                `json:"geofence_lng"`
	GeofenceRadiusMeters float64                 `json:"geofence_radius_meters"`
	DeviceLockEnabled    bool                    `json:"device_lock_enabled"`
	BarberOverrides      []models.BarberOverride `json:"barber_overrides"`
	StaffOverrides       []models.StaffOverride  `json:"staff_overrides"`
	UpdatedAt            *time.Time              `json:"updated_at"`
}

type SaveAttendanceConfigResponse struct {
	ConfigID uuid.UUID `json:"config_id"`
}

type FREnabledResponse struct {
	FREnabled bool `json:"fr_enabled"`
}

func AttendanceConfigToResponse(c *models.EffectiveAttendanceConfig) *AttendanceConfigResponse {
	return &AttendanceConfigResponse{
		ID:                   c.ConfigID,
		BranchID:             c.BranchID,
		FREnabled:            c.FREnabled,
		AutoApproveThreshold: c.AutoApproveThreshold,
		AdminReviewThreshold: c.AdminReviewThreshold,
		LivenessRequired:     c.LivenessRequired,
		GeofenceEnabled:      c.GeofenceEnabled,
		GeofenceLat:          c.GeofenceLat,
		GeofenceLng:          c.GeofenceLng,
		GeofenceRadiusMeters: c.GeofenceRadiusMeters,
		DeviceLockEnabled:    c.DeviceLockEnabled,
		BarberOverrides:      c.BarberOverrides,
		StaffOverrides:       c.StaffOverrides,
		UpdatedAt:            c.UpdatedAt,
	}
}
