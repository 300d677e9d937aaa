package models

import (
	"gorm.io/gorm"
)

const (
	TemplateCategoryBreakfast = "breakfast"
	TemplateCategoryLunch     = "lunch"
	TemplateCategoryDinner    = "dinner"
	TemplateCategorySnack     = "snack"
	TemplateCategoryFullDay   = "full-day"
)

func ValidTemplateCategory(c string) bool {
	switch c {
	case TemplateCategoryBreakfast, TemplateCategoryLunch, TemplateCategoryDinner,
		TemplateCategorySnack, TemplateCategoryFullDay:
		return true
	}
	return false
}

// MealTemplate is a reusable, plan-independent bundle of meal items owned by
// a nutritionist.
type MealTemplate struct {
	gorm.Model
	NutritionistID uint   `gorm:"index;not null"`
	Name           string `gorm:"not null"`
	Description    string
	Category       string `gorm:"size:16"`
	Items          []MealTemplateItem
}

// MealTemplateItem is a value snapshot of a meal: same shape as MealPlanItem
// minus the weekday. Applying a template clones these; mutating one side
// never affects the other.
type MealTemplateItem struct {
	gorm.Model
	MealTemplateID uint   `gorm:"index;not null"`
	MealType       string `gorm:"size:16;not null"`
	MealName       string `gorm:"not null"`
	Description    string
	TimeOfDay      string `gorm:"size:8"`

	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fats     *float64
}
