package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
)

type TutorController struct {
	Bookings *services.Booking
}

// GetUpcomingLessons returns the logged-in tutor's unresolved lessons inside
// a date window (?filter=today|tomorrow|week|month, ?limit=N).
func (tc *TutorController) GetUpcomingLessons(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	limit := 10
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}

	now := time.Now()
	from := now.Format("2006-01-02")
	var to string

	filter := c.Query("filter", "month")
	switch filter {
	case "today":
		to = from
	case "tomorrow":
		from = now.AddDate(0, 0, 1).Format("2006-01-02")
		to = from
	case "week":
		to = now.AddDate(0, 0, 7).Format("2006-01-02")
	default:
		filter = "month"
		to = now.AddDate(0, 1, 0).Format("2006-01-02")
	}

	schedules, err := tc.Bookings.Upcoming(c.Context(), actor.ID, from, to, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"schedules": schedules,
		"count":     len(schedules),
		"filter":    filter,
		"startDate": from,
		"endDate":   to,
	})
}

// GetLessonHistory returns the tutor's settled lessons with pagination
// (?status=completed|cancelled, ?range=week|month|year|all, ?page, ?limit).
func (tc *TutorController) GetLessonHistory(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	page := 1
	limit := 10
	if parsed := c.QueryInt("page"); parsed > 0 {
		page = parsed
	}
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}

	var statuses []models.ScheduleStatus
	switch models.ScheduleStatus(c.Query("status")) {
	case models.StatusCompleted:
		statuses = []models.ScheduleStatus{models.StatusCompleted}
	case models.StatusCancelled:
		statuses = []models.ScheduleStatus{models.StatusCancelled}
	default:
		statuses = []models.ScheduleStatus{models.StatusCompleted, models.StatusCancelled}
	}

	now := time.Now()
	var from string
	switch c.Query("range", "month") {
	case "week":
		from = now.AddDate(0, 0, -7).Format("2006-01-02")
	case "year":
		from = now.AddDate(-1, 0, 0).Format("2006-01-02")
	case "all":
		from = ""
	default:
		from = now.AddDate(0, -1, 0).Format("2006-01-02")
	}

	schedules, total, err := tc.Bookings.History(c.Context(), actor.ID, statuses, from, limit, (page-1)*limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"schedules": schedules,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}
