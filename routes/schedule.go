package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/controllers"
	"github.com/LuffyPiratesYeah/malmoi-server/middleware"
)

// SetupScheduleRoutes configures booking routes plus the tutor dashboard.
func SetupScheduleRoutes(app *fiber.App, schedules *controllers.ScheduleController, tutor *controllers.TutorController) {
	group := app.Group("/schedules", middleware.Protected())
	group.Get("/", schedules.GetAllSchedules)
	group.Get("/:id", schedules.GetSchedule)
	group.Post("/", schedules.CreateSchedule)
	group.Put("/:id", schedules.UpdateSchedule)
	group.Delete("/:id", schedules.DeleteSchedule)

	dashboard := app.Group("/tutor/schedules", middleware.Protected(), middleware.RequireUserType("teacher", "admin"))
	dashboard.Get("/upcoming", tutor.GetUpcomingLessons)
	dashboard.Get("/history", tutor.GetLessonHistory)
}
