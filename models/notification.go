package models

import "time"

// Notification is the persisted side of a domain event ("meal plan assigned",
// "progress logged"). Writing one must never block the mutation that caused it.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Type      string `gorm:"size:32"` // "meal_plan_assigned" | "progress_logged" | ...
	Title     string
	Message   string `gorm:"type:text"`
	RelatedID uint
	Read      bool `gorm:"default:false"`
	CreatedAt time.Time
}
