package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal types form a closed set; the UI may group by them but the engine
// never dispatches on free-form strings.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

func ValidMealType(t string) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// MealPlan is a date-bounded weekly-recurring menu for one patient.
// Plans are deactivated, not deleted, in normal flows.
type MealPlan struct {
	gorm.Model
	PatientID      uint      `gorm:"index;not null"`
	NutritionistID uint      `gorm:"index;not null"`
	Title          string    `gorm:"not null"`
	Description    string
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null"` // invariant: EndDate >= StartDate
	IsActive       bool      `gorm:"default:true"`
	Items          []MealPlanItem
}

// MealPlanItem recurs every week on its weekday while the plan is active.
// There is no per-date row for the menu itself, only for completion.
type MealPlanItem struct {
	gorm.Model
	MealPlanID  uint   `gorm:"index;not null"`
	DayOfWeek   int    `gorm:"not null"` // 0..6, Monday = 0
	MealType    string `gorm:"size:16;not null"`
	MealName    string `gorm:"not null"`
	Description string
	TimeOfDay   string `gorm:"size:8"` // "HH:MM", empty = untimed

	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fats     *float64
}
