package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Barber is a barber profile from the shared identity registry. Read-only for this service.
type Barber struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`

	FullName string `gorm:"not null"`
	Email    string
	Avatar   string
	IsActive bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Barber) TableName() string {
	return "barbers"
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
