package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/dto"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

type ScheduleController struct {
	Bookings *services.Booking
}

// GetAllSchedules lists schedules with their class and student, optionally
// filtered by classId/studentId, ordered by date ascending.
func (sc *ScheduleController) GetAllSchedules(c *fiber.Ctx) error {
	schedules, err := sc.Bookings.List(c.Context(), store.ScheduleFilter{
		ClassID:   c.Query("classId"),
		StudentID: c.Query("studentId"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(schedules)
}

func (sc *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	schedule, err := sc.Bookings.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(schedule)
}

// CreateSchedule books a lesson for the authenticated student. A duplicate
// slot answers 409 DUPLICATE_BOOKING unless forceCreate is set, which lets
// the client re-submit after user confirmation.
func (sc *ScheduleController) CreateSchedule(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	req := new(dto.CreateScheduleRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "classId, date (YYYY-MM-DD) and time (HH:MM) are required")
	}

	schedule, err := sc.Bookings.Create(c.Context(), services.CreateBookingInput{
		ClassID:     req.ClassID,
		StudentID:   actor.ID,
		Date:        req.Date,
		Time:        req.Time,
		ContactInfo: req.ContactInfo,
		ForceCreate: req.ForceCreate,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// UpdateSchedule applies a partial update: status transitions and/or
// date/time/link changes.
func (sc *ScheduleController) UpdateSchedule(c *fiber.Ctx) error {
	req := new(dto.UpdateScheduleRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "invalid schedule fields")
	}

	schedule, err := sc.Bookings.Update(c.Context(), c.Params("id"), services.UpdateScheduleInput{
		Status:         req.Status,
		Date:           req.Date,
		Time:           req.Time,
		ZoomLink:       req.ZoomLink,
		GoogleDocsLink: req.GoogleDocsLink,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(schedule)
}

func (sc *ScheduleController) DeleteSchedule(c *fiber.Ctx) error {
	if err := sc.Bookings.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
