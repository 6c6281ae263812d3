package store

import (
	"context"
	"errors"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

type UserFilter struct {
	VerificationStatus string
	UserType           string
}

// ScheduleFilter narrows schedule listings. Date bounds compare the stored
// YYYY-MM-DD strings, which order lexically. TutorID filters through the
// referenced class.
type ScheduleFilter struct {
	ClassID    string
	StudentID  string
	TutorID    string
	Statuses   []models.ScheduleStatus
	DateFrom   string
	DateTo     string
	Descending bool
	Limit      int
	Offset     int
}

// Store abstracts the persistent tables so the services can run against
// Postgres in production and the in-memory implementation in tests.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, f UserFilter) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error

	CreateClass(ctx context.Context, c *models.Class) error
	GetClass(ctx context.Context, id string) (*models.Class, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	UpdateClass(ctx context.Context, c *models.Class) error
	DeleteClass(ctx context.Context, id string) error

	CreateSchedule(ctx context.Context, s *models.Schedule) error
	GetSchedule(ctx context.Context, id string) (*models.Schedule, error)
	ListSchedules(ctx context.Context, f ScheduleFilter) ([]models.Schedule, error)
	CountSchedules(ctx context.Context, f ScheduleFilter) (int64, error)
	// FindActiveSchedule looks up an unresolved (pending or scheduled) row
	// matching the exact booking slot, for duplicate detection.
	FindActiveSchedule(ctx context.Context, classID, studentID, date, timeOfDay string) (*models.Schedule, error)
	UpdateSchedule(ctx context.Context, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, id string) error

	CreateCode(ctx context.Context, c *models.EmailVerificationCode) error
	LatestCode(ctx context.Context, email string) (*models.EmailVerificationCode, error)
	UpdateCode(ctx context.Context, c *models.EmailVerificationCode) error
}
