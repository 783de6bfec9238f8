package server

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account row. Usernames are unique and passwords are stored as
// bcrypt hashes only.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PlanRecord holds the single saved plan per user as a JSON blob. The
// unique index on UserID enforces one plan per account.
type PlanRecord struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PlanData  []byte    `gorm:"not null"`
	UpdatedAt time.Time
}
