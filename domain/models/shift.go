package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftStatus string

const (
	ShiftStatusPendingIn   ShiftStatus = "pending_in"
	ShiftStatusApprovedIn  ShiftStatus = "approved_in"
	ShiftStatusPendingOut  ShiftStatus = "pending_out"
	ShiftStatusApprovedOut ShiftStatus = "approved_out"
)

type ClockMethod string

const (
	ClockMethodFR  ClockMethod = "fr"  // face recognition
	ClockMethodPIN ClockMethod = "pin" // manual fallback
)

// StaleShiftThreshold is the age after which an open approved shift is presumed abandoned.
const StaleShiftThreshold = 24 * time.Hour

// ShiftZone is the fixed UTC+8 offset used for the auto-close day boundary.
var ShiftZone = time.FixedZone("PHT", 8*60*60)

// Shift is one clock-in/clock-out interval for one subject at one branch.
// Exactly one of BarberID and UserID is set.
type Shift struct {
	ID       uuid.UUID  `gorm:"primaryKey;type:uuid"`
	BarberID *uuid.UUID `gorm:"type:uuid;index"`
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	BranchID uuid.UUID  `gorm:"type:uuid;not null;index"`

	ClockIn  time.Time  `gorm:"not null;index"`
	ClockOut *time.Time `gorm:"index"` // nil while the shift is open

	Status ShiftStatus `gorm:"type:varchar(20);index"`

	// Recognition metadata
	ConfidenceScore   *float64
	PhotoStorageID    *string
	LivenessPassed    *bool
	DeviceFingerprint *string
	Method            ClockMethod `gorm:"type:varchar(10)"`
	GeofencePassed    *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Shift) TableName() string {
	return "time_attendance"
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Subject returns the subject the shift belongs to.
func (s *Shift) Subject() Subject {
	if s.BarberID != nil {
		return BarberSubject(*s.BarberID)
	}
	if s.UserID != nil {
		return StaffSubject(*s.UserID)
	}
	return Subject{}
}

// SetSubject writes the subject into the barber/user reference columns.
func (s *Shift) SetSubject(subject Subject) {
	s.BarberID = subject.BarberID()
	s.UserID = subject.UserID()
}

func (s *Shift) IsOpen() bool {
	return s.ClockOut == nil
}

// EffectiveStatus covers rows written before statuses existed. Postgres.Migrate
// backfills those rows, so this only matters for data read mid-migration.
func (s *Shift) EffectiveStatus() ShiftStatus {
	if s.Status != "" {
		return s.Status
	}
	if s.ClockOut != nil {
		return ShiftStatusApprovedOut
	}
	return ShiftStatusApprovedIn
}

// IsStale reports whether an open shift has been running longer than StaleShiftThreshold.
func (s *Shift) IsStale(now time.Time) bool {
	return now.Sub(s.ClockIn) > StaleShiftThreshold
}

// Duration is clock_out - clock_in, or the running time against now for open shifts.
func (s *Shift) Duration(now time.Time) time.Duration {
	if s.ClockOut != nil {
		return s.ClockOut.Sub(s.ClockIn)
	}
	return now.Sub(s.ClockIn)
}

// AutoCloseTime is midnight at the start of the local day following clockIn,
// computed in ShiftZone and returned in UTC.
func AutoCloseTime(clockIn time.Time) time.Time {
	local := clockIn.In(ShiftZone)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, ShiftZone).UTC()
}
