package models

import (
	"time"

	"gorm.io/gorm"
)

// WaterLog is the per-day glass counter. GoalGlasses is frozen into the row
// when it is first created; later changes to the default goal never rewrite
// past days. At most one row per (patient, date).
type WaterLog struct {
	gorm.Model
	PatientID    uint      `gorm:"not null;index:idx_water_day,unique"`
	LogDate      time.Time `gorm:"not null;index:idx_water_day,unique"`
	GlassesCount int       `gorm:"not null;default:0"`
	GoalGlasses  int       `gorm:"not null"`
}

// GoalReached is derived, never persisted.
func (w *WaterLog) GoalReached() bool {
	return w.GlassesCount >= w.GoalGlasses
}
