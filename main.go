package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/LuffyPiratesYeah/malmoi-server/controllers"
	"github.com/LuffyPiratesYeah/malmoi-server/cron"
	"github.com/LuffyPiratesYeah/malmoi-server/db"
	"github.com/LuffyPiratesYeah/malmoi-server/redis"
	"github.com/LuffyPiratesYeah/malmoi-server/routes"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
	"github.com/LuffyPiratesYeah/malmoi-server/utils"
)

func main() {
	app := fiber.New()
	db.Init()
	if os.Getenv("AUTO_MIGRATE") == "true" {
		db.Migrate()
	}
	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	mailer := utils.SMTPMailer{}
	st := store.NewGorm(db.DB)

	verification := services.NewVerification(st, mailer)
	verification.BypassCode = os.Getenv("SIGNUP_BYPASS_CODE")
	users := services.NewUsers(st, verification, mailer)
	registry := services.NewRegistry(st)
	bookings := services.NewBooking(st)

	auth := &controllers.AuthController{Users: users, Verification: verification}
	classCtrl := &controllers.ClassController{Registry: registry}
	scheduleCtrl := &controllers.ScheduleController{Bookings: bookings}
	tutorCtrl := &controllers.TutorController{Bookings: bookings}
	userCtrl := &controllers.UserController{Users: users}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Malmoi API")
	})
	routes.SetupAuthRoutes(app, auth)
	routes.SetupClassRoutes(app, classCtrl)
	routes.SetupScheduleRoutes(app, scheduleCtrl, tutorCtrl)
	routes.SetupUserRoutes(app, userCtrl)
	routes.SetupUploadRoutes(app, controllers.UploadController{})

	cron.StartCronJobs(mailer)

	log.Fatal(app.Listen(":8000"))
}
