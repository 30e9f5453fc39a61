package services

import (
	"context"

	"github.com/google/uuid"
)

// SubjectLocker serialises work per key across every instance of the service.
type SubjectLocker interface {
	// Acquire blocks until the key is held or ctx is done. The returned func releases it.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// AttendanceEvent is pushed to live branch dashboards.
type AttendanceEvent struct {
	Type     string      `json:"type"`
	BranchID uuid.UUID   `json:"branch_id"`
	Data     interface{} `json:"data"`
}

const (
	EventShiftOpened = "shift_opened"
	EventShiftClosed = "shift_closed"
)

// AttendanceNotifier publishes events. Delivery is best-effort.
type AttendanceNotifier interface {
	Publish(event AttendanceEvent)
}

// PhotoStorage removes stored capture photos.
type PhotoStorage interface {
	Delete(ctx context.Context, storageID string) error
}
