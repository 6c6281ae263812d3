package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/controllers"
	"github.com/LuffyPiratesYeah/malmoi-server/middleware"
)

// SetupClassRoutes configures the class catalogue routes; reads are public,
// mutations need a verified tutor (checked in the service).
func SetupClassRoutes(app *fiber.App, classes *controllers.ClassController) {
	group := app.Group("/classes")
	group.Get("/", classes.GetAllClasses)
	group.Get("/:id", classes.GetClass)
	group.Post("/", middleware.Protected(), classes.CreateClass)
	group.Put("/:id", middleware.Protected(), classes.UpdateClass)
	group.Delete("/:id", middleware.Protected(), classes.DeleteClass)
}
