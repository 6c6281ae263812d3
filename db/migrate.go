package db

import (
	"log"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
)

// Migrate runs AutoMigrate for all tables. Only invoked explicitly
// (AUTO_MIGRATE=true), never as part of Init.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.Schedule{},
		&models.EmailVerificationCode{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	log.Println("✅ Migrations applied successfully!")
}
