package models

import "time"

// MealCompletion marks one recurring item as eaten on one date. Presence of
// the row means complete, absence means incomplete; toggling off deletes the
// row outright (no soft delete, or the unique index would block the next
// toggle on). The unique index over the triple is the guard against racing
// toggles: a duplicate insert is rejected by the store instead of
// double-marking.
type MealCompletion struct {
	ID             uint      `gorm:"primaryKey"`
	PatientID      uint      `gorm:"not null;index:idx_completion_triple,unique"`
	MealPlanItemID uint      `gorm:"not null;index:idx_completion_triple,unique"`
	CompletedDate  time.Time `gorm:"not null;index:idx_completion_triple,unique"`
	CreatedAt      time.Time
}
