package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/controllers"
	"github.com/LuffyPiratesYeah/malmoi-server/middleware"
)

func SetupUploadRoutes(app *fiber.App, upload controllers.UploadController) {
	app.Post("/upload", middleware.Protected(), upload.Upload)
}
