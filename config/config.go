package config

import (
	"fmt"
	"log"
	"os"

	"github.com/robsoriano/wellness-hub-plan/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	// TranslateError so unique-index violations come back as
	// gorm.ErrDuplicatedKey; the completion toggle depends on that.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate is shared with the test harness, which runs it against SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MealPlan{},
		&models.MealPlanItem{},
		&models.MealTemplate{},
		&models.MealTemplateItem{},
		&models.MealCompletion{},
		&models.WaterLog{},
		&models.ProgressLog{},
		&models.Notification{},
		&models.UserDevice{},
	)
}
