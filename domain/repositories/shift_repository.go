package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
)

// ErrShiftNotOpen is returned by Close when the shift is missing or already closed.
var ErrShiftNotOpen = errors.New("shift is not open")

// ShiftFilter narrows history queries. Zero values mean unbounded.
type ShiftFilter struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

type ShiftRepository interface {
	Create(ctx context.Context, shift *models.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error)

	// Open shifts of a subject in clock-in order. Rows are locked for update when the
	// backend supports it and ctx carries a transaction.
	GetOpenBySubject(ctx context.Context, subject models.Subject) ([]models.Shift, error)

	GetOpenByBranch(ctx context.Context, branchID uuid.UUID) ([]models.Shift, error)

	// Newest first
	ListBySubject(ctx context.Context, subject models.Subject, filter ShiftFilter) ([]models.Shift, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID, filter ShiftFilter) ([]models.Shift, error)

	// Close sets clock_out and status plus the recognition fields of a clock-out.
	Close(ctx context.Context, id uuid.UUID, close ShiftClose) error
}

// ShiftClose holds the fields written when a shift is closed. Nil pointers leave the column untouched.
type ShiftClose struct {
	ClockOut          time.Time
	Status            models.ShiftStatus
	ConfidenceScore   *float64
	PhotoStorageID    *string
	LivenessPassed    *bool
	DeviceFingerprint *string
	Method            models.ClockMethod
}
