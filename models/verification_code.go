package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailVerificationCode is an ephemeral signup proofing record. Only the
// bcrypt hash of the code is stored. A code is consumed exactly once and is
// valid up to and including ExpiresAt.
type EmailVerificationCode struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"index"`
	CodeHash  string    `json:"-" gorm:"column:code_hash"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"column:expires_at"`
	Consumed  bool      `json:"consumed"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *EmailVerificationCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
