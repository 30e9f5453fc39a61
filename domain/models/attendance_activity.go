package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityClockIn       ActivityType = "clock_in"
	ActivityClockOut      ActivityType = "clock_out"
	ActivityManualClockIn ActivityType = "manual_clock_in"
	ActivityAutoClosed    ActivityType = "auto_closed" // stale shift closed by the reconciler
)

// AttendanceActivity is the append-only audit trail of clock events.
type AttendanceActivity struct {
	ID           uuid.UUID    `gorm:"primaryKey;type:uuid"`
	ShiftID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	BarberID     *uuid.UUID   `gorm:"type:uuid;index"`
	UserID       *uuid.UUID   `gorm:"type:uuid;index"`
	BranchID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	ActivityType ActivityType `gorm:"type:varchar(30);not null;index"`
	Status       ShiftStatus  `gorm:"type:varchar(20)"`
	Confidence   *float64
	Method       ClockMethod `gorm:"type:varchar(10)"`
	Message      string      `gorm:"type:text"`
	CreatedAt    time.Time   `gorm:"index"`
}

func (AttendanceActivity) TableName() string {
	return "attendance_activities"
}

func (a *AttendanceActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewShiftActivity builds an activity entry describing the current state of a shift.
func NewShiftActivity(shift *Shift, activityType ActivityType, message string) *AttendanceActivity {
	return &AttendanceActivity{
		ShiftID:      shift.ID,
		BarberID:     shift.BarberID,
		UserID:       shift.UserID,
		BranchID:     shift.BranchID,
		ActivityType: activityType,
		Status:       shift.Status,
		Confidence:   shift.ConfidenceScore,
		Method:       shift.Method,
		Message:      message,
	}
}
