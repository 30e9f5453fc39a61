package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceDevice is a kiosk allowed to submit clock events for a branch.
type AttendanceDevice struct {
	ID                uuid.UUID  `gorm:"primaryKey;type:uuid"`
	BranchID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeviceFingerprint string     `gorm:"not null;uniqueIndex"`
	DeviceName        string     `gorm:"not null"`
	IsActive          bool       `gorm:"not null"`
	RegisteredBy      *uuid.UUID `gorm:"type:uuid"`
	RegisteredAt      time.Time
	LastUsed          *time.Time
	UpdatedAt         time.Time
}

func (AttendanceDevice) TableName() string {
	return "attendance_devices"
}

func (d *AttendanceDevice) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
