package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleStatus string

const (
	StatusPending   ScheduleStatus = "pending"
	StatusScheduled ScheduleStatus = "scheduled"
	StatusCompleted ScheduleStatus = "completed"
	StatusCancelled ScheduleStatus = "cancelled"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Schedule is a student's reservation of a class at a date+time slot. Date
// and Time are naive strings (YYYY-MM-DD, HH:MM) with no timezone
// normalization. Uniqueness of (class, student, date, time) is advisory only
// and enforced as a soft check in the booking service.
type Schedule struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	ClassID        string         `json:"classId" gorm:"type:uuid;column:class_id;index"`
	Class          *Class         `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	Status         ScheduleStatus `json:"status"`
	StudentID      string         `json:"studentId" gorm:"type:uuid;column:student_id;index"`
	Student        *User          `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	ContactInfo    string         `json:"contactInfo,omitempty" gorm:"column:contact_info"`
	ZoomLink       string         `json:"zoomLink,omitempty" gorm:"column:zoom_link"`
	GoogleDocsLink string         `json:"googleDocsLink,omitempty" gorm:"column:google_docs_link"`
	ReminderSent   bool           `json:"-" gorm:"column:reminder_sent"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	return nil
}

// CanTransition checks the booking state machine: a pending lesson can be
// approved or rejected by the tutor, a scheduled lesson can be completed or
// cancelled, and terminal states are frozen. Re-setting the current status
// is a no-op and always allowed.
func (s *Schedule) CanTransition(next ScheduleStatus) error {
	if next == s.Status {
		return nil
	}
	switch s.Status {
	case StatusPending:
		if next != StatusScheduled && next != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", next)
		}
	case StatusScheduled:
		if next != StatusCompleted && next != StatusCancelled {
			return fmt.Errorf("invalid transition from scheduled to %s", next)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", s.Status)
	}
	return nil
}

// StartsAt combines the date and time strings into a wall-clock instant in
// the server's local zone, for the reminder sweep.
func (s *Schedule) StartsAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.Time, time.Local)
}
