package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a staff account from the shared identity registry. Read-only for this service.
type User struct {
	ID       uuid.UUID  `gorm:"primaryKey;type:uuid"`
	Username string     `gorm:"uniqueIndex;not null"`
	Email    string     `gorm:"index"`
	Nickname string
	Role     string     `gorm:"default:'staff'"`
	BranchID *uuid.UUID `gorm:"type:uuid;index"` // nil for super admins and customers
	Avatar   string
	IsActive bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName prefers the nickname shown on the kiosk.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}
