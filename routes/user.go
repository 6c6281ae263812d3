package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/controllers"
	"github.com/LuffyPiratesYeah/malmoi-server/middleware"
)

// SetupUserRoutes configures profile and verification-workflow routes.
func SetupUserRoutes(app *fiber.App, users *controllers.UserController) {
	group := app.Group("/users", middleware.Protected())
	group.Get("/", middleware.RequireUserType("admin"), users.GetAllUsers)
	group.Get("/:id", users.GetUser)
	group.Put("/:id", users.UpdateUser)
	group.Post("/:id/approve", middleware.RequireUserType("admin"), users.ApproveUser)
}
