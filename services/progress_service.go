package services

import (
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"

	"gorm.io/gorm"
)

// ProgressService records the patient's daily check-ins (weight, energy,
// mood) and derives the streak from their log dates.
type ProgressService struct {
	db  *gorm.DB
	now Clock
}

func NewProgressService(db *gorm.DB, clock Clock) *ProgressService {
	return &ProgressService{db: db, now: orSystem(clock)}
}

type ProgressEntry struct {
	Weight      *float64 `json:"weight"`
	EnergyLevel *int     `json:"energy_level"` // 1..10
	Mood        string   `json:"mood"`
	Notes       string   `json:"notes"`
}

func (s *ProgressService) AddLog(patientID uint, date time.Time, entry ProgressEntry) (*models.ProgressLog, error) {
	if date.IsZero() {
		date = s.now()
	}
	if entry.EnergyLevel != nil && (*entry.EnergyLevel < 1 || *entry.EnergyLevel > 10) {
		return nil, validationErr("energy level must be between 1 and 10")
	}
	if entry.Weight != nil && *entry.Weight <= 0 {
		return nil, validationErr("weight must be positive")
	}

	row := &models.ProgressLog{
		PatientID:   patientID,
		LogDate:     dayStart(date),
		Weight:      entry.Weight,
		EnergyLevel: entry.EnergyLevel,
		Mood:        entry.Mood,
		Notes:       entry.Notes,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, storeErr("create progress log", err)
	}

	EmitEvent(patientID, EventProgressLogged, "Progress logged",
		"Daily progress entry recorded", row.ID)
	return row, nil
}

func (s *ProgressService) ListLogs(patientID uint) ([]models.ProgressLog, error) {
	var logs []models.ProgressLog
	err := s.db.
		Where("patient_id = ?", patientID).
		Order("log_date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, storeErr("list progress logs", err)
	}
	return logs, nil
}

// Streak counts consecutive logged days ending today. No log today means
// streak zero regardless of history.
func (s *ProgressService) Streak(patientID uint) (int, error) {
	var dates []time.Time
	err := s.db.
		Model(&models.ProgressLog{}).
		Where("patient_id = ?", patientID).
		Pluck("log_date", &dates).Error
	if err != nil {
		return 0, storeErr("load progress dates", err)
	}
	return CurrentStreak(dates, s.now()), nil
}
