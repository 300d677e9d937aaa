package services_test

import (
	"testing"
	"time"

	"github.com/robsoriano/wellness-hub-plan/config"
	"github.com/robsoriano/wellness-hub-plan/models"
	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// fixedClock pins "today" so streak and weekly math is deterministic.
// 2025-06-11 is a Wednesday.
var testToday = time.Date(2025, time.June, 11, 15, 30, 0, 0, time.Local)

func fixedClock() services.Clock {
	return func() time.Time { return testToday }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// seedPlan creates an active plan for patient 1 written by nutritionist 2.
func seedPlan(t *testing.T, db *gorm.DB) *models.MealPlan {
	t.Helper()
	plans := services.NewPlanService(db, fixedClock())
	plan, err := plans.CreatePlan(2, 1, "Cut phase", "low carb weekdays",
		date(2025, time.June, 2), date(2025, time.June, 29))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	return plan
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
