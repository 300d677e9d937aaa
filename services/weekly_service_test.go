package services_test

import (
	"testing"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"
	"github.com/robsoriano/wellness-hub-plan/services"
)

func TestComputeWeekZeroActivity(t *testing.T) {
	db := setupTestDB(t)
	plans := services.NewPlanService(db, fixedClock())
	completions := services.NewCompletionService(db, plans, fixedClock())
	water := services.NewWaterService(db, fixedClock())
	weekly := services.NewWeeklyService(db, fixedClock(), plans, completions, water)

	seedPlan(t, db) // active plan, no items

	sum, err := weekly.ComputeCurrentWeek(1)
	if err != nil {
		t.Fatalf("ComputeCurrentWeek: %v", err)
	}
	if want := date(2025, time.June, 9); !sum.WeekStart.Equal(want) {
		t.Fatalf("week start = %v, want %v (Monday)", sum.WeekStart, want)
	}
	if len(sum.Days) != 7 {
		t.Fatalf("got %d days", len(sum.Days))
	}
	if sum.MealsPercent != 0 || sum.WaterPercent != 0 {
		t.Errorf("percents = %v / %v, want 0 / 0", sum.MealsPercent, sum.WaterPercent)
	}
	for _, d := range sum.Days {
		if d.Adherence != services.AdherenceNone {
			t.Errorf("%v adherence = %q, want none", d.Date, d.Adherence)
		}
		// empty plan still sets a nonzero target via the fallback
		if d.MealsTarget != 5 {
			t.Errorf("%v target = %d, want fallback 5", d.Date, d.MealsTarget)
		}
	}
}

func TestComputeWeekNoActivePlan(t *testing.T) {
	db := setupTestDB(t)
	plans := services.NewPlanService(db, fixedClock())
	completions := services.NewCompletionService(db, plans, fixedClock())
	water := services.NewWaterService(db, fixedClock())
	weekly := services.NewWeeklyService(db, fixedClock(), plans, completions, water)

	sum, err := weekly.ComputeCurrentWeek(1)
	if err != nil {
		t.Fatalf("ComputeCurrentWeek: %v", err)
	}
	for _, d := range sum.Days {
		// no plan still measures against the fallback bar
		if d.MealsTarget != 5 || d.Adherence != services.AdherenceNone {
			t.Errorf("%v = target %d adherence %q, want 5 and none", d.Date, d.MealsTarget, d.Adherence)
		}
	}
	if sum.MealsPercent != 0 || sum.WaterPercent != 0 {
		t.Errorf("percents = %v / %v, want 0 / 0", sum.MealsPercent, sum.WaterPercent)
	}
}

// Deactivating a plan keeps its completion rows; the week still scores them
// against the fallback target instead of zeroing the days out.
func TestComputeWeekSurvivesDeactivatedPlan(t *testing.T) {
	db := setupTestDB(t)
	plans := services.NewPlanService(db, fixedClock())
	completions := services.NewCompletionService(db, plans, fixedClock())
	water := services.NewWaterService(db, fixedClock())
	weekly := services.NewWeeklyService(db, fixedClock(), plans, completions, water)

	plan := seedPlan(t, db)
	item, err := plans.AddItem(plan.ID, 2, services.ItemAttrs{
		MealType: models.MealTypeLunch, MealName: "Soup",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	wed := date(2025, time.June, 11)
	if _, err := completions.ToggleCompletion(1, item.ID, wed); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := plans.DeactivatePlan(plan.ID); err != nil {
		t.Fatalf("DeactivatePlan: %v", err)
	}

	sum, err := weekly.ComputeCurrentWeek(1)
	if err != nil {
		t.Fatalf("ComputeCurrentWeek: %v", err)
	}
	for _, d := range sum.Days {
		if !d.Date.Equal(wed) {
			continue
		}
		if d.MealsCompleted != 1 || d.MealsTarget != 5 {
			t.Errorf("wednesday = %d/%d, want 1/5", d.MealsCompleted, d.MealsTarget)
		}
		if d.Adherence != services.AdherenceLow {
			t.Errorf("wednesday adherence = %q, want low", d.Adherence)
		}
	}
}

// One perfect water day is one seventh of the week, not the whole of it:
// untouched days still count their default goal in the denominator.
func TestComputeWeekWaterDenominatorCoversAllDays(t *testing.T) {
	db := setupTestDB(t)
	plans := services.NewPlanService(db, fixedClock())
	completions := services.NewCompletionService(db, plans, fixedClock())
	water := services.NewWaterService(db, fixedClock())
	weekly := services.NewWeeklyService(db, fixedClock(), plans, completions, water)

	pour(t, water, date(2025, time.June, 11), 8)

	sum, err := weekly.ComputeCurrentWeek(1)
	if err != nil {
		t.Fatalf("ComputeCurrentWeek: %v", err)
	}
	// 8 of 7*8 glasses
	if sum.WaterPercent != 14.29 {
		t.Errorf("water percent = %v, want 14.29", sum.WaterPercent)
	}
	for _, d := range sum.Days {
		if d.WaterGoal != 8 {
			t.Errorf("%v water goal = %d, want 8", d.Date, d.WaterGoal)
		}
	}
}

func TestComputeWeekMixedAdherence(t *testing.T) {
	db := setupTestDB(t)
	plans := services.NewPlanService(db, fixedClock())
	completions := services.NewCompletionService(db, plans, fixedClock())
	water := services.NewWaterService(db, fixedClock())
	weekly := services.NewWeeklyService(db, fixedClock(), plans, completions, water)

	plan := seedPlan(t, db)

	// two items on the reference day → per-day target of 2
	var ids []uint
	for _, name := range []string{"Oats", "Stew"} {
		it, err := plans.AddItem(plan.ID, 1, services.ItemAttrs{
			MealType: models.MealTypeBreakfast, MealName: name,
		})
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		ids = append(ids, it.ID)
	}

	tue := date(2025, time.June, 10)
	wed := date(2025, time.June, 11)
	thu := date(2025, time.June, 12)

	// tuesday: everything done
	for _, id := range ids {
		if _, err := completions.ToggleCompletion(1, id, tue); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	pour(t, water, tue, 8)

	// wednesday: half of each
	if _, err := completions.ToggleCompletion(1, ids[0], wed); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	pour(t, water, wed, 4)

	// thursday: water only, a quarter of the goal
	pour(t, water, thu, 2)

	sum, err := weekly.ComputeCurrentWeek(1)
	if err != nil {
		t.Fatalf("ComputeCurrentWeek: %v", err)
	}

	byDate := make(map[time.Time]services.DaySummary, 7)
	for _, d := range sum.Days {
		byDate[d.Date] = d
	}

	checks := []struct {
		day       time.Time
		score     float64
		adherence string
	}{
		{tue, 1.0, services.AdherenceHigh},
		{wed, 0.5, services.AdherenceMedium},
		{thu, 0.125, services.AdherenceLow},
		{date(2025, time.June, 13), 0, services.AdherenceNone},
	}
	for _, c := range checks {
		d, ok := byDate[c.day]
		if !ok {
			t.Fatalf("day %v missing from summary", c.day)
		}
		if d.Score != c.score || d.Adherence != c.adherence {
			t.Errorf("%v = score %v adherence %q, want %v %q",
				c.day, d.Score, d.Adherence, c.score, c.adherence)
		}
	}

	// 3 of 14 meal slots, 14 of 7*8 glasses
	if sum.MealsPercent != 21.43 {
		t.Errorf("meals percent = %v, want 21.43", sum.MealsPercent)
	}
	if sum.WaterPercent != 25.0 {
		t.Errorf("water percent = %v, want 25", sum.WaterPercent)
	}
}

func TestComputeWeekScoreClamped(t *testing.T) {
	db := setupTestDB(t)
	plans := services.NewPlanService(db, fixedClock())
	completions := services.NewCompletionService(db, plans, fixedClock())
	water := services.NewWaterService(db, fixedClock())
	weekly := services.NewWeeklyService(db, fixedClock(), plans, completions, water)

	plan := seedPlan(t, db)

	// one item on the reference day → target 1; completing three distinct
	// items the same date overshoots it
	it, err := plans.AddItem(plan.ID, 1, services.ItemAttrs{
		MealType: models.MealTypeLunch, MealName: "Bowl",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	extra1, err := plans.AddItem(plan.ID, 2, services.ItemAttrs{MealType: models.MealTypeSnack, MealName: "Apple"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	extra2, err := plans.AddItem(plan.ID, 2, services.ItemAttrs{MealType: models.MealTypeSnack, MealName: "Nuts"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	wed := date(2025, time.June, 11)
	for _, id := range []uint{it.ID, extra1.ID, extra2.ID} {
		if _, err := completions.ToggleCompletion(1, id, wed); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	pour(t, water, wed, 12)

	sum, err := weekly.ComputeCurrentWeek(1)
	if err != nil {
		t.Fatalf("ComputeCurrentWeek: %v", err)
	}
	for _, d := range sum.Days {
		if d.Date.Equal(wed) {
			if d.Score != 1.0 {
				t.Errorf("score = %v, want clamped to 1", d.Score)
			}
			if d.Adherence != services.AdherenceHigh {
				t.Errorf("adherence = %q, want high", d.Adherence)
			}
		}
	}
}

func pour(t *testing.T, water *services.WaterService, day time.Time, glasses int) {
	t.Helper()
	for i := 0; i < glasses; i++ {
		if _, err := water.Increment(1, day); err != nil {
			t.Fatalf("increment water on %v: %v", day, err)
		}
	}
}
