package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultGeofenceRadiusMeters = 100
	DefaultLivenessRequired     = true
)

type BarberOverride struct {
	BarberID uuid.UUID `json:"barber_id"`
	FRExempt bool      `json:"fr_exempt"`
}

type StaffOverride struct {
	UserID   uuid.UUID `json:"user_id"`
	FRExempt bool      `json:"fr_exempt"`
}

// AttendanceConfig is the stored per-branch attendance policy. Nil fields fall back to defaults.
type AttendanceConfig struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	FREnabled            bool
	AutoApproveThreshold *float64
	AdminReviewThreshold *float64
	LivenessRequired     *bool

	// Geofence
	GeofenceEnabled      *bool
	GeofenceLat          *float64
	GeofenceLng          *float64
	GeofenceRadiusMeters *float64

	DeviceLockEnabled *bool

	BarberOverrides []BarberOverride `gorm:"type:jsonb;serializer:json"`
	StaffOverrides  []StaffOverride  `gorm:"type:jsonb;serializer:json"`

	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AttendanceConfig) TableName() string {
	return "attendance_configs"
}

func (c *AttendanceConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// EffectiveAttendanceConfig is the fully resolved policy of a branch.
type EffectiveAttendanceConfig struct {
	ConfigID             *uuid.UUID // nil when the branch has no stored row
	BranchID             uuid.UUID
	FREnabled            bool
	AutoApproveThreshold float64
	AdminReviewThreshold float64
	LivenessRequired     bool
	GeofenceEnabled      bool
	GeofenceLat          *float64
	GeofenceLng          *float64
	GeofenceRadiusMeters float64
	DeviceLockEnabled    bool
	BarberOverrides      []BarberOverride
	StaffOverrides       []StaffOverride
	UpdatedAt            *time.Time
}

// DefaultAttendanceConfig is the policy of a branch that never saved one.
func DefaultAttendanceConfig(branchID uuid.UUID) EffectiveAttendanceConfig {
	return EffectiveAttendanceConfig{
		BranchID:             branchID,
		FREnabled:            false,
		AutoApproveThreshold: DefaultAutoApproveThreshold,
		AdminReviewThreshold: DefaultAdminReviewThreshold,
		LivenessRequired:     DefaultLivenessRequired,
		GeofenceEnabled:      false,
		GeofenceRadiusMeters: DefaultGeofenceRadiusMeters,
		DeviceLockEnabled:    false,
		BarberOverrides:      []BarberOverride{},
		StaffOverrides:       []StaffOverride{},
	}
}

// Effective merges the stored fields over the defaults. A nil receiver yields the defaults.
func (c *AttendanceConfig) Effective(branchID uuid.UUID) EffectiveAttendanceConfig {
	eff := DefaultAttendanceConfig(branchID)
	if c == nil {
		return eff
	}

	id := c.ID
	updatedAt := c.UpdatedAt
	eff.ConfigID = &id
	eff.UpdatedAt = &updatedAt
	eff.FREnabled = c.FREnabled

	if c.AutoApproveThreshold != nil {
		eff.AutoApproveThreshold = *c.AutoApproveThreshold
	}
	if c.AdminReviewThreshold != nil {
		eff.AdminReviewThreshold = *c.AdminReviewThreshold
	}
	if c.LivenessRequired != nil {
		eff.LivenessRequired = *c.LivenessRequired
	}
	if c.GeofenceEnabled != nil {
		eff.GeofenceEnabled = *c.GeofenceEnabled
	}
	eff.GeofenceLat = c.GeofenceLat
	eff.GeofenceLng = c.GeofenceLng
	if c.GeofenceRadiusMeters != nil {
		eff.GeofenceRadiusMeters = *c.GeofenceRadiusMeters
	}
	if c.DeviceLockEnabled != nil {
		eff.DeviceLockEnabled = *c.DeviceLockEnabled
	}
	if c.BarberOverrides != nil {
		eff.BarberOverrides = c.BarberOverrides
	}
	if c.StaffOverrides != nil {
		eff.StaffOverrides = c.StaffOverrides
	}
	return eff
}

func (e EffectiveAttendanceConfig) Thresholds() Thresholds {
	return Thresholds{
		AutoApprove: e.AutoApproveThreshold,
		AdminReview: e.AdminReviewThreshold,
	}
}

// IsFRExempt reports whether the subject is excused from face recognition at this branch.
func (e EffectiveAttendanceConfig) IsFRExempt(subject Subject) bool {
	switch subject.Kind {
	case SubjectBarber:
		for _, o := range e.BarberOverrides {
			if o.BarberID == subject.ID {
				return o.FRExempt
			}
		}
	case SubjectStaff:
		for _, o := range e.StaffOverrides {
			if o.UserID == subject.ID {
				return o.FRExempt
			}
		}
	}
	return false
}

// AttendanceConfigPatch carries the fields of a save request. Only non-nil fields are written
// when the row already exists.
type AttendanceConfigPatch struct {
	FREnabled            bool
	AutoApproveThreshold *float64
	AdminReviewThreshold *float64
	LivenessRequired     *bool
	GeofenceEnabled      *bool
	GeofenceLat          *float64
	GeofenceLng          *float64
	GeofenceRadiusMeters *float64
	DeviceLockEnabled    *bool
	BarberOverrides      []BarberOverride
	StaffOverrides       []StaffOverride
	UpdatedBy            *uuid.UUID
}

// Apply writes the patch onto the stored row.
func (p AttendanceConfigPatch) Apply(c *AttendanceConfig) {
	c.FREnabled = p.FREnabled
	if p.AutoApproveThreshold != nil {
		c.AutoApproveThreshold = p.AutoApproveThreshold
	}
	if p.AdminReviewThreshold != nil {
		c.AdminReviewThreshold = p.AdminReviewThreshold
	}
	if p.LivenessRequired != nil {
		c.LivenessRequired = p.LivenessRequired
	}
	if p.GeofenceEnabled != nil {
		c.GeofenceEnabled = p.GeofenceEnabled
	}
	if p.GeofenceLat != nil {
		c.GeofenceLat = p.GeofenceLat
	}
	if p.GeofenceLng != nil {
		c.GeofenceLng = p.GeofenceLng
	}
	if p.GeofenceRadiusMeters != nil {
		c.GeofenceRadiusMeters = p.GeofenceRadiusMeters
	}
	if p.DeviceLockEnabled != nil {
		c.DeviceLockEnabled = p.DeviceLockEnabled
	}
	if p.BarberOverrides != nil {
		c.BarberOverrides = p.BarberOverrides
	}
	if p.StaffOverrides != nil {
		c.StaffOverrides = p.StaffOverrides
	}
	if p.UpdatedBy != nil {
		c.UpdatedBy = p.UpdatedBy
	}
}
