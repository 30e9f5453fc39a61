package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is a shop location from the shared identity registry. Read-only for this service.
type Branch struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	BranchCode string    `gorm:"uniqueIndex;not null"`
	Name       string    `gorm:"not null"`
	Address    string
	IsActive   bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Branch) TableName() string {
	return "branches"
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
