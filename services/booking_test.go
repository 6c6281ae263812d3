package services

import (
	"context"
	"testing"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

func newBookingFixture(t *testing.T) (*Booking, *store.Memory, *models.Class, *models.User) {
	t.Helper()
	st := store.NewMemory()
	tutor := seedVerifiedTutor(t, st, "tutor")
	student := seedUser(t, st, models.User{
		Email:    "student@example.com",
		Name:     "Student",
		UserType: models.TypeStudent,
	})
	class := seedClass(t, st, tutor)
	return NewBooking(st), st, class, student
}

func TestCreateBookingDuplicateDetection(t *testing.T) {
	bookings, st, class, student := newBookingFixture(t)
	ctx := context.Background()

	in := CreateBookingInput{
		ClassID:   class.ID,
		StudentID: student.ID,
		Date:      "2025-10-16",
		Time:      "20:00",
	}

	first, err := bookings.Create(ctx, in)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if first.Status != models.StatusPending {
		t.Fatalf("expected pending status, got %s", first.Status)
	}
	if first.Class == nil || first.Class.ID != class.ID {
		t.Fatalf("expected booking to carry its class")
	}

	_, err = bookings.Create(ctx, in)
	expectKind(t, err, KindDuplicateBooking)

	total, _ := st.CountSchedules(ctx, store.ScheduleFilter{ClassID: class.ID})
	if total != 1 {
		t.Fatalf("duplicate booking must not insert a row, found %d", total)
	}

	in.ForceCreate = true
	forced, err := bookings.Create(ctx, in)
	if err != nil {
		t.Fatalf("forced booking failed: %v", err)
	}
	if forced.Status != models.StatusPending {
		t.Fatalf("forced booking must start pending, got %s", forced.Status)
	}
	total, _ = st.CountSchedules(ctx, store.ScheduleFilter{ClassID: class.ID})
	if total != 2 {
		t.Fatalf("forced booking must insert, found %d rows", total)
	}
}

func TestCreateBookingOnDifferentSlotIsNotDuplicate(t *testing.T) {
	bookings, _, class, student := newBookingFixture(t)
	ctx := context.Background()

	if _, err := bookings.Create(ctx, CreateBookingInput{
		ClassID: class.ID, StudentID: student.ID, Date: "2025-10-16", Time: "20:00",
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := bookings.Create(ctx, CreateBookingInput{
		ClassID: class.ID, StudentID: student.ID, Date: "2025-10-16", Time: "21:00",
	}); err != nil {
		t.Fatalf("different time slot must not be a duplicate: %v", err)
	}
}

func TestCreateBookingNotDuplicateAfterCancellation(t *testing.T) {
	bookings, _, class, student := newBookingFixture(t)
	ctx := context.Background()

	in := CreateBookingInput{ClassID: class.ID, StudentID: student.ID, Date: "2025-10-16", Time: "20:00"}
	first, err := bookings.Create(ctx, in)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	cancelled := string(models.StatusCancelled)
	if _, err := bookings.Update(ctx, first.ID, UpdateScheduleInput{Status: &cancelled}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// Only unresolved rows count for duplicate detection.
	if _, err := bookings.Create(ctx, in); err != nil {
		t.Fatalf("rebooking a cancelled slot must succeed: %v", err)
	}
}

func TestCreateBookingClassNotFound(t *testing.T) {
	bookings, _, _, student := newBookingFixture(t)
	_, err := bookings.Create(context.Background(), CreateBookingInput{
		ClassID: "missing", StudentID: student.ID, Date: "2025-10-16", Time: "20:00",
	})
	expectKind(t, err, KindNotFound)
}

func TestUpdateScheduleTransitionsAndLinks(t *testing.T) {
	bookings, _, class, student := newBookingFixture(t)
	ctx := context.Background()

	booking, err := bookings.Create(ctx, CreateBookingInput{
		ClassID: class.ID, StudentID: student.ID, Date: "2025-10-16", Time: "20:00",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// Tutor approves and attaches the meeting link in one update.
	scheduled := string(models.StatusScheduled)
	zoom := "https://zoom.us/j/123"
	updated, err := bookings.Update(ctx, booking.ID, UpdateScheduleInput{Status: &scheduled, ZoomLink: &zoom})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.Status != models.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", updated.Status)
	}
	if updated.ZoomLink != zoom {
		t.Fatalf("expected zoom link to be attached")
	}

	completed := string(models.StatusCompleted)
	updated, err = bookings.Update(ctx, booking.ID, UpdateScheduleInput{Status: &completed})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	// Terminal states are frozen.
	pending := string(models.StatusPending)
	_, err = bookings.Update(ctx, booking.ID, UpdateScheduleInput{Status: &pending})
	expectKind(t, err, KindInvalidStatus)
}

func TestUpdateScheduleRejectsUnknownStatus(t *testing.T) {
	bookings, _, class, student := newBookingFixture(t)
	ctx := context.Background()

	booking, err := bookings.Create(ctx, CreateBookingInput{
		ClassID: class.ID, StudentID: student.ID, Date: "2025-10-16", Time: "20:00",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	bogus := "confirmed"
	_, err = bookings.Update(ctx, booking.ID, UpdateScheduleInput{Status: &bogus})
	expectKind(t, err, KindInvalidStatus)
}

func TestUpdateScheduleEmptyAndMissing(t *testing.T) {
	bookings, _, _, _ := newBookingFixture(t)
	ctx := context.Background()

	_, err := bookings.Update(ctx, "whatever", UpdateScheduleInput{})
	expectKind(t, err, KindInvalidInput)

	status := string(models.StatusScheduled)
	_, err = bookings.Update(ctx, "missing", UpdateScheduleInput{Status: &status})
	expectKind(t, err, KindNotFound)
}

func TestTutorUpcomingAndHistory(t *testing.T) {
	bookings, _, class, student := newBookingFixture(t)
	ctx := context.Background()

	mk := func(date, timeOfDay string) *models.Schedule {
		s, err := bookings.Create(ctx, CreateBookingInput{
			ClassID: class.ID, StudentID: student.ID, Date: date, Time: timeOfDay,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		return s
	}

	early := mk("2025-10-10", "10:00")
	mk("2025-10-12", "10:00")
	outside := mk("2025-11-01", "10:00")

	scheduled := string(models.StatusScheduled)
	completed := string(models.StatusCompleted)
	if _, err := bookings.Update(ctx, early.ID, UpdateScheduleInput{Status: &scheduled}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := bookings.Update(ctx, early.ID, UpdateScheduleInput{Status: &completed}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	upcoming, err := bookings.Upcoming(ctx, class.TutorID, "2025-10-01", "2025-10-31", 10)
	if err != nil {
		t.Fatalf("upcoming failed: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 upcoming lesson in window, got %d", len(upcoming))
	}
	for _, s := range upcoming {
		if s.ID == outside.ID {
			t.Fatalf("lesson outside the window must not appear")
		}
	}

	history, total, err := bookings.History(ctx, class.TutorID, nil, "", 10, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if total != 1 || len(history) != 1 || history[0].ID != early.ID {
		t.Fatalf("expected only the completed lesson in history, got %d rows (total %d)", len(history), total)
	}
}
