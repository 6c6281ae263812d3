package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class is a teaching offering published by a verified tutor. TutorName is a
// denormalized snapshot taken at creation and not kept in sync with later
// profile changes.
type Class struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Image       string    `json:"image"`
	TutorID     string    `json:"tutorId" gorm:"type:uuid;column:tutor_id;index"`
	TutorName   string    `json:"tutorName" gorm:"column:tutor_name"`
	Details     []string  `json:"details,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
