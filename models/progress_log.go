package models

import (
	"time"

	"gorm.io/gorm"
)

// ProgressLog is a patient's daily check-in: weight, energy, mood, notes.
// One logical entry per date is assumed, not enforced. The set of distinct
// log dates feeds the streak calculation.
type ProgressLog struct {
	gorm.Model
	PatientID   uint      `gorm:"index;not null"`
	LogDate     time.Time `gorm:"index;not null"`
	Weight      *float64
	EnergyLevel *int // 1..10
	Mood        string
	Notes       string
}
