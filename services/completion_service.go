package services

import (
	"errors"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"

	"gorm.io/gorm"
)

// CompletionService tracks per-date completion of recurring meals: the row
// exists or it doesn't, there is nothing to update in place.
type CompletionService struct {
	db    *gorm.DB
	plans *PlanService
	now   Clock
}

func NewCompletionService(db *gorm.DB, plans *PlanService, clock Clock) *CompletionService {
	return &CompletionService{db: db, plans: plans, now: orSystem(clock)}
}

// ToggleCompletion flips the (patient, item, date) mark: delete if present,
// insert if absent. Two racing inserts both see "absent"; the unique index
// rejects the loser, and that rejection counts as a successful
// toggle-to-complete rather than an error.
func (s *CompletionService) ToggleCompletion(patientID, itemID uint, date time.Time) (completed bool, err error) {
	if date.IsZero() {
		date = s.now()
	}

	var item models.MealPlanItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, &NotFoundError{Resource: "meal plan item", ID: itemID}
		}
		return false, storeErr("load meal plan item", err)
	}

	day := dayStart(date)

	var existing models.MealCompletion
	err = s.db.
		Where("patient_id = ? AND meal_plan_item_id = ? AND completed_date = ?", patientID, itemID, day).
		First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, storeErr("delete completion", err)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.MealCompletion{
			PatientID:      patientID,
			MealPlanItemID: itemID,
			CompletedDate:  day,
		}
		if err := s.db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// a concurrent toggle got there first; the meal is complete
				return true, nil
			}
			return false, storeErr("create completion", err)
		}
		return true, nil
	default:
		return false, storeErr("load completion", err)
	}
}

// ChecklistItem is one scheduled meal annotated with its completion state
// for the requested date.
type ChecklistItem struct {
	models.MealPlanItem
	Completed bool `json:"completed"`
}

// DailyChecklist is the day's resolved schedule plus the aggregate.
type DailyChecklist struct {
	Date           time.Time       `json:"date"`
	Items          []ChecklistItem `json:"items"`
	CompletedCount int             `json:"completed_count"`
	TotalCount     int             `json:"total_count"`
	Percent        float64         `json:"percent"`
}

// DailyProgress resolves the plan's schedule for the date's weekday and joins
// each item against that date's completions. Completion rows for items that
// no longer exist are simply not matched — orphans never error.
func (s *CompletionService) DailyProgress(patientID, planID uint, date time.Time) (*DailyChecklist, error) {
	if date.IsZero() {
		date = s.now()
	}
	items, err := s.plans.ResolveDate(planID, date)
	if err != nil {
		return nil, err
	}

	day := dayStart(date)
	var rows []models.MealCompletion
	if err := s.db.
		Where("patient_id = ? AND completed_date = ?", patientID, day).
		Find(&rows).Error; err != nil {
		return nil, storeErr("load completions", err)
	}
	done := make(map[uint]bool, len(rows))
	for _, r := range rows {
		done[r.MealPlanItemID] = true
	}

	out := &DailyChecklist{Date: day, Items: make([]ChecklistItem, 0, len(items))}
	for _, it := range items {
		c := done[it.ID]
		if c {
			out.CompletedCount++
		}
		out.Items = append(out.Items, ChecklistItem{MealPlanItem: it, Completed: c})
	}
	out.TotalCount = len(items)
	out.Percent = percent(out.CompletedCount, out.TotalCount)
	return out, nil
}

// completionsByDay counts completion rows per date over [from, to] inclusive.
// Used by the weekly aggregator.
func (s *CompletionService) completionsByDay(patientID uint, from, to time.Time) (map[string]int, error) {
	var rows []models.MealCompletion
	if err := s.db.
		Where("patient_id = ? AND completed_date >= ? AND completed_date <= ?", patientID, dayStart(from), dayStart(to)).
		Find(&rows).Error; err != nil {
		return nil, storeErr("load completions", err)
	}
	counts := make(map[string]int)
	for _, r := range rows {
		counts[dayKey(r.CompletedDate)]++
	}
	return counts, nil
}
