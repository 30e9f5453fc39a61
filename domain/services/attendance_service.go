package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

// Clock returns the current time. Injected so staleness rules can be tested.
type Clock func() time.Time

type FRClockInInput struct {
	Subject           models.Subject
	BranchID          uuid.UUID
	ConfidenceScore   float64
	PhotoStorageID    string
	LivenessPassed    bool
	DeviceFingerprint *string
	GeofencePassed    *bool
}

type FRClockOutInput struct {
	Subject           models.Subject
	ConfidenceScore   float64
	PhotoStorageID    string
	LivenessPassed    *bool // defaults to true
	DeviceFingerprint *string
}

type ManualClockInInput struct {
	Subject           models.Subject
	BranchID          uuid.UUID
	PhotoStorageID    *string
	DeviceFingerprint *string
}

type ClockInResult struct {
	ShiftID                 uuid.UUID
	ClockInTime             time.Time
	Status                  models.ShiftStatus
	AutoApproved            bool
	AutoClosedPreviousShift bool
	AutoClosedShiftID       *uuid.UUID
}

type ClockOutResult struct {
	ShiftID       uuid.UUID
	ClockOutTime  time.Time
	Status        models.ShiftStatus
	AutoApproved  bool
	ShiftDuration time.Duration
}

type ClockStatus struct {
	IsClockedIn   bool
	Shift         *models.Shift // the open shift, nil when clocked out
	ShiftDuration time.Duration
}

// ShiftWithPerson is a shift annotated with the subject's display name.
type ShiftWithPerson struct {
	Shift      models.Shift
	PersonName string
}

type BarberBoardEntry struct {
	BarberID    uuid.UUID
	BarberName  string
	Avatar      string
	IsClockedIn bool
	ClockInTime *time.Time
	ShiftID     *uuid.UUID
}

type HistoryQuery struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

type AttendanceService interface {
	// FRClockIn opens a shift from a face match. The shift is approved or held for review
	// depending on the branch thresholds. Stale approved shifts are closed first.
	FRClockIn(ctx context.Context, input FRClockInInput) (*ClockInResult, error)

	// FRClockOut closes the subject's approved open shift.
	FRClockOut(ctx context.Context, input FRClockOutInput) (*ClockOutResult, error)

	// ManualClockIn opens a shift that always waits for admin review.
	ManualClockIn(ctx context.Context, input ManualClockInInput) (*ClockInResult, error)

	GetClockStatus(ctx context.Context, subject models.Subject) (*ClockStatus, error)
	GetHistory(ctx context.Context, subject models.Subject, query HistoryQuery) ([]models.Shift, error)
	GetBranchAttendance(ctx context.Context, branchID uuid.UUID, query HistoryQuery) ([]ShiftWithPerson, error)
	GetBranchBoard(ctx context.Context, branchID uuid.UUID) ([]BarberBoardEntry, error)
}
