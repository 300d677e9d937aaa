package services

import (
	"math"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"

	"gorm.io/gorm"
)

// Adherence tiers for one day's blended score.
const (
	AdherenceNone   = "none"
	AdherenceLow    = "low"
	AdherenceMedium = "medium"
	AdherenceHigh   = "high"
)

// canonicalWeekday is the reference day whose item count stands in for the
// per-day meal target across the whole week. An approximation carried over
// deliberately — see WeeklyService.referenceTotal.
const canonicalWeekday = 1

// fallbackMealsPerDay fills in when the active plan has nothing scheduled on
// the canonical weekday, or when there is no active plan at all.
const fallbackMealsPerDay = 5

// WeeklyService composes completions and water logs into a Monday-start
// 7-day adherence report. Everything is computed on demand from the rows;
// nothing is precomputed or cached.
type WeeklyService struct {
	db          *gorm.DB
	now         Clock
	plans       *PlanService
	completions *CompletionService
	water       *WaterService
}

func NewWeeklyService(
	db *gorm.DB,
	clock Clock,
	plans *PlanService,
	completions *CompletionService,
	water *WaterService,
) *WeeklyService {
	return &WeeklyService{
		db:          db,
		now:         orSystem(clock),
		plans:       plans,
		completions: completions,
		water:       water,
	}
}

type DaySummary struct {
	Date           time.Time `json:"date"`
	MealsCompleted int       `json:"meals_completed"`
	MealsTarget    int       `json:"meals_target"`
	WaterGlasses   int       `json:"water_glasses"`
	WaterGoal      int       `json:"water_goal"`
	Score          float64   `json:"score"` // blended fraction in [0,1]
	Adherence      string    `json:"adherence"`
}

type WeeklySummary struct {
	WeekStart    time.Time    `json:"week_start"`
	Days         []DaySummary `json:"days"` // always 7, Monday first
	MealsPercent float64      `json:"meals_percent"`
	WaterPercent float64      `json:"water_percent"`
}

// ComputeWeek builds the report for the Monday-start week containing
// referenceDate.
func (s *WeeklyService) ComputeWeek(patientID uint, referenceDate time.Time) (*WeeklySummary, error) {
	start := weekStart(referenceDate)
	end := start.AddDate(0, 0, 6)

	target, err := s.referenceTotal(patientID)
	if err != nil {
		return nil, err
	}
	completed, err := s.completions.completionsByDay(patientID, start, end)
	if err != nil {
		return nil, err
	}
	water, err := s.water.logsByDay(patientID, start, end)
	if err != nil {
		return nil, err
	}

	out := &WeeklySummary{WeekStart: start, Days: make([]DaySummary, 0, 7)}
	var mealsDone, mealsTarget, glasses, goals int
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)

		ds := DaySummary{
			Date:           day,
			MealsCompleted: completed[dayKey(day)],
			MealsTarget:    target,
		}
		if w, ok := water[dayKey(day)]; ok {
			ds.WaterGlasses = w.GlassesCount
			ds.WaterGoal = w.GoalGlasses
		} else {
			// an untouched day still counts against the default goal, so one
			// perfect day out of seven doesn't read as a perfect week
			ds.WaterGoal = s.water.defaultGoal
		}

		mealScore := fraction(ds.MealsCompleted, ds.MealsTarget)
		waterScore := fraction(ds.WaterGlasses, ds.WaterGoal)
		ds.Score = clamp01((mealScore + waterScore) / 2)
		ds.Adherence = adherenceTier(ds.Score)

		mealsDone += ds.MealsCompleted
		mealsTarget += ds.MealsTarget
		glasses += ds.WaterGlasses
		goals += ds.WaterGoal
		out.Days = append(out.Days, ds)
	}

	out.MealsPercent = percent(mealsDone, mealsTarget)
	out.WaterPercent = percent(glasses, goals)
	return out, nil
}

func (s *WeeklyService) ComputeCurrentWeek(patientID uint) (*WeeklySummary, error) {
	return s.ComputeWeek(patientID, s.now())
}

// referenceTotal approximates the per-day meal target as the item count of
// one canonical weekday of the patient's active plan, not the true per-day
// total. Days with lighter or heavier menus are measured against the same
// bar. Known approximation, kept on purpose.
func (s *WeeklyService) referenceTotal(patientID uint) (int, error) {
	plan, err := s.plans.ActivePlan(patientID)
	if err != nil {
		return 0, err
	}
	if plan == nil {
		// completions outlive a deactivated plan; they are still measured
		// against the fallback bar rather than vanishing from the week
		return fallbackMealsPerDay, nil
	}
	var count int64
	if err := s.db.
		Model(&models.MealPlanItem{}).
		Where("meal_plan_id = ? AND day_of_week = ?", plan.ID, canonicalWeekday).
		Count(&count).Error; err != nil {
		return 0, storeErr("count reference day", err)
	}
	if count == 0 {
		return fallbackMealsPerDay, nil
	}
	return int(count), nil
}

func adherenceTier(score float64) string {
	switch {
	case score >= 0.8:
		return AdherenceHigh
	case score >= 0.5:
		return AdherenceMedium
	case score > 0:
		return AdherenceLow
	default:
		return AdherenceNone
	}
}

func fraction(actual, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(actual) / float64(target)
}

func percent(actual, target int) float64 {
	if target <= 0 {
		return 0
	}
	return round2(float64(actual) / float64(target) * 100)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
