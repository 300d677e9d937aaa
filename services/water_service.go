package services

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"

	"gorm.io/gorm"
)

const defaultGoalGlasses = 8

// WaterService is the per-day glass counter. A day has no row until the
// patient first touches it; the goal in force at that moment is frozen into
// the row and later default changes leave past days alone.
type WaterService struct {
	db          *gorm.DB
	now         Clock
	defaultGoal int
}

func NewWaterService(db *gorm.DB, clock Clock) *WaterService {
	goal := defaultGoalGlasses
	if v := os.Getenv("WATER_GOAL_GLASSES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			goal = n
		}
	}
	return &WaterService{db: db, now: orSystem(clock), defaultGoal: goal}
}

// GetDailyLog returns the stored row, or virtual defaults when the day is
// untouched. Reading never creates a row.
func (s *WaterService) GetDailyLog(patientID uint, date time.Time) (*models.WaterLog, error) {
	if date.IsZero() {
		date = s.now()
	}
	day := dayStart(date)
	var row models.WaterLog
	err := s.db.
		Where("patient_id = ? AND log_date = ?", patientID, day).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.WaterLog{
			PatientID:    patientID,
			LogDate:      day,
			GlassesCount: 0,
			GoalGlasses:  s.defaultGoal,
		}, nil
	}
	if err != nil {
		return nil, storeErr("load water log", err)
	}
	return &row, nil
}

func (s *WaterService) TodayLog(patientID uint) (*models.WaterLog, error) {
	return s.GetDailyLog(patientID, s.now())
}

func (s *WaterService) Increment(patientID uint, date time.Time) (*models.WaterLog, error) {
	return s.adjust(patientID, date, +1)
}

// Decrement clamps at zero — there is no negative water.
func (s *WaterService) Decrement(patientID uint, date time.Time) (*models.WaterLog, error) {
	return s.adjust(patientID, date, -1)
}

func (s *WaterService) adjust(patientID uint, date time.Time, delta int) (*models.WaterLog, error) {
	if date.IsZero() {
		date = s.now()
	}
	day := dayStart(date)

	var row models.WaterLog
	err := s.db.
		Where("patient_id = ? AND log_date = ?", patientID, day).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.WaterLog{
			PatientID:    patientID,
			LogDate:      day,
			GlassesCount: clampGlasses(delta),
			GoalGlasses:  s.defaultGoal, // frozen at creation
		}
		if err := s.db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// a concurrent first mutation created the row; apply our
				// delta to the winner's row instead
				return s.bump(patientID, day, delta)
			}
			return nil, storeErr("create water log", err)
		}
		return &row, nil
	}
	if err != nil {
		return nil, storeErr("load water log", err)
	}

	row.GlassesCount = clampGlasses(row.GlassesCount + delta)
	if err := s.db.Save(&row).Error; err != nil {
		return nil, storeErr("update water log", err)
	}
	return &row, nil
}

func (s *WaterService) bump(patientID uint, day time.Time, delta int) (*models.WaterLog, error) {
	var row models.WaterLog
	if err := s.db.
		Where("patient_id = ? AND log_date = ?", patientID, day).
		First(&row).Error; err != nil {
		return nil, storeErr("load water log", err)
	}
	row.GlassesCount = clampGlasses(row.GlassesCount + delta)
	if err := s.db.Save(&row).Error; err != nil {
		return nil, storeErr("update water log", err)
	}
	return &row, nil
}

func clampGlasses(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// logsByDay indexes a patient's water rows over [from, to] inclusive.
// Used by the weekly aggregator.
func (s *WaterService) logsByDay(patientID uint, from, to time.Time) (map[string]models.WaterLog, error) {
	var rows []models.WaterLog
	if err := s.db.
		Where("patient_id = ? AND log_date >= ? AND log_date <= ?", patientID, dayStart(from), dayStart(to)).
		Find(&rows).Error; err != nil {
		return nil, storeErr("load water logs", err)
	}
	idx := make(map[string]models.WaterLog, len(rows))
	for _, r := range rows {
		idx[dayKey(r.LogDate)] = r
	}
	return idx, nil
}
