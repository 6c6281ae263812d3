package services

import (
	"context"
	"errors"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID       string
	UserType models.UserType
}

func (a Actor) IsAdmin() bool {
	return a.UserType == models.TypeAdmin
}

// Booking implements the lesson booking policy: duplicate detection on
// create and the status state machine on update.
type Booking struct {
	store store.Store
}

func NewBooking(st store.Store) *Booking {
	return &Booking{store: st}
}

type CreateBookingInput struct {
	ClassID     string
	StudentID   string
	Date        string
	Time        string
	ContactInfo string
	ForceCreate bool
}

// Create books a lesson slot in pending status. A booking is a duplicate
// when an unresolved (pending or scheduled) row already exists for the same
// class, student, date and time; without ForceCreate that fails so the
// caller can re-prompt for confirmation, with ForceCreate the insert goes
// ahead regardless. The duplicate check and the insert are two separate
// store round-trips; two concurrent identical requests can both pass the
// check.
func (b *Booking) Create(ctx context.Context, in CreateBookingInput) (*models.Schedule, error) {
	if _, err := b.store.GetClass(ctx, in.ClassID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failWith(KindNotFound, "class not found")
		}
		return nil, failWith(KindInternal, "failed to look up class")
	}

	existing, err := b.store.FindActiveSchedule(ctx, in.ClassID, in.StudentID, in.Date, in.Time)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, failWith(KindInternal, "failed to check existing bookings")
	}
	if existing != nil && !in.ForceCreate {
		return nil, failWith(KindDuplicateBooking, "this lesson is already booked for that slot")
	}

	schedule := &models.Schedule{
		ClassID:     in.ClassID,
		StudentID:   in.StudentID,
		Date:        in.Date,
		Time:        in.Time,
		ContactInfo: in.ContactInfo,
		Status:      models.StatusPending,
	}
	if err := b.store.CreateSchedule(ctx, schedule); err != nil {
		return nil, failWith(KindInternal, "failed to create schedule")
	}
	return b.Get(ctx, schedule.ID)
}

type UpdateScheduleInput struct {
	Status         *string
	Date           *string
	Time           *string
	ZoomLink       *string
	GoogleDocsLink *string
}

func (in UpdateScheduleInput) empty() bool {
	return in.Status == nil && in.Date == nil && in.Time == nil &&
		in.ZoomLink == nil && in.GoogleDocsLink == nil
}

// Update applies a partial update to a schedule row. Status changes go
// through the state machine on the model; link fields are accepted on any
// row, gating them to scheduled lessons is a UI convention.
func (b *Booking) Update(ctx context.Context, id string, in UpdateScheduleInput) (*models.Schedule, error) {
	if in.empty() {
		return nil, failWith(KindInvalidInput, "no fields to update")
	}

	schedule, err := b.store.GetSchedule(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failWith(KindNotFound, "schedule not found")
		}
		return nil, failWith(KindInternal, "failed to fetch schedule")
	}

	if in.Status != nil {
		next := models.ScheduleStatus(*in.Status)
		if !next.Valid() {
			return nil, failWith(KindInvalidStatus, "invalid status")
		}
		if err := schedule.CanTransition(next); err != nil {
			return nil, failWith(KindInvalidStatus, err.Error())
		}
		schedule.Status = next
	}
	if in.Date != nil {
		schedule.Date = *in.Date
	}
	if in.Time != nil {
		schedule.Time = *in.Time
	}
	if in.ZoomLink != nil {
		schedule.ZoomLink = *in.ZoomLink
	}
	if in.GoogleDocsLink != nil {
		schedule.GoogleDocsLink = *in.GoogleDocsLink
	}

	if err := b.store.UpdateSchedule(ctx, schedule); err != nil {
		return nil, failWith(KindInternal, "failed to update schedule")
	}
	return b.Get(ctx, schedule.ID)
}

func (b *Booking) Get(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := b.store.GetSchedule(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failWith(KindNotFound, "schedule not found")
		}
		return nil, failWith(KindInternal, "failed to fetch schedule")
	}
	return schedule, nil
}

func (b *Booking) List(ctx context.Context, f store.ScheduleFilter) ([]models.Schedule, error) {
	schedules, err := b.store.ListSchedules(ctx, f)
	if err != nil {
		return nil, failWith(KindInternal, "failed to fetch schedules")
	}
	return schedules, nil
}

func (b *Booking) Delete(ctx context.Context, id string) error {
	if err := b.store.DeleteSchedule(ctx, id); err != nil {
		return failWith(KindInternal, "failed to delete schedule")
	}
	return nil
}

// Upcoming returns a tutor's unresolved lessons inside the date window,
// soonest first.
func (b *Booking) Upcoming(ctx context.Context, tutorID, dateFrom, dateTo string, limit int) ([]models.Schedule, error) {
	return b.List(ctx, store.ScheduleFilter{
		TutorID:  tutorID,
		Statuses: []models.ScheduleStatus{models.StatusPending, models.StatusScheduled},
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Limit:    limit,
	})
}

// History returns a tutor's settled lessons, newest first, with the total
// row count for pagination.
func (b *Booking) History(ctx context.Context, tutorID string, statuses []models.ScheduleStatus, dateFrom string, limit, offset int) ([]models.Schedule, int64, error) {
	if len(statuses) == 0 {
		statuses = []models.ScheduleStatus{models.StatusCompleted, models.StatusCancelled}
	}
	filter := store.ScheduleFilter{
		TutorID:    tutorID,
		Statuses:   statuses,
		DateFrom:   dateFrom,
		Descending: true,
		Limit:      limit,
		Offset:     offset,
	}
	total, err := b.store.CountSchedules(ctx, filter)
	if err != nil {
		return nil, 0, failWith(KindInternal, "failed to count schedules")
	}
	schedules, err := b.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}
