package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/controllers"
	"github.com/LuffyPiratesYeah/malmoi-server/middleware"
)

// SetupAuthRoutes configures signup, login and token routes
func SetupAuthRoutes(app *fiber.App, auth *controllers.AuthController) {
	group := app.Group("/auth")

	// Public routes
	group.Post("/send-code", auth.SendCode)
	group.Post("/signup", auth.Signup)
	group.Post("/login", auth.Login)
	group.Post("/refresh", auth.RefreshToken)

	// Protected routes
	group.Get("/me", middleware.Protected(), auth.Me)
	group.Post("/logout", middleware.Protected(), auth.Logout)
}
