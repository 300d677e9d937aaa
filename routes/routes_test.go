package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robsoriano/wellness-hub-plan/config"
	"github.com/robsoriano/wellness-hub-plan/models"
	"github.com/robsoriano/wellness-hub-plan/routes"
	"github.com/robsoriano/wellness-hub-plan/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "routes-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	return routes.SetupRouter()
}

func bearer(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(userID, role)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + tok
}

func do(t *testing.T, r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	if w := do(t, r, http.MethodGet, "/plans", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/plans", "Bearer garbage", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: %d, want 401", w.Code)
	}
}

func TestRoleGuards(t *testing.T) {
	r := newTestRouter(t)
	patient := bearer(t, 1, models.RolePatient)
	nutritionist := bearer(t, 2, models.RoleNutritionist)

	if w := do(t, r, http.MethodPost, "/plans", patient, gin.H{}); w.Code != http.StatusForbidden {
		t.Errorf("patient on authoring route: %d, want 403", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/me/water", nutritionist, nil); w.Code != http.StatusForbidden {
		t.Errorf("nutritionist on patient route: %d, want 403", w.Code)
	}
}

// TestPlanLifecycleOverHTTP walks the main flow end to end: the nutritionist
// authors a plan for today, the patient sees it, ticks the meal off and logs
// water, and the weekly summary reflects both.
func TestPlanLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	patient := bearer(t, 1, models.RolePatient)
	nutritionist := bearer(t, 2, models.RoleNutritionist)

	today := time.Now()
	w := do(t, r, http.MethodPost, "/plans", nutritionist, gin.H{
		"patient_id": 1,
		"title":      "Maintenance",
		"start_date": today.AddDate(0, 0, -1).Format("2006-01-02"),
		"end_date":   today.AddDate(0, 0, 30).Format("2006-01-02"),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create plan: %d %s", w.Code, w.Body.String())
	}
	var plan models.MealPlan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}

	// schedule one meal on today's weekday so /me/plan/today has something
	weekday := (int(today.Weekday()) + 6) % 7
	w = do(t, r, http.MethodPost, fmt.Sprintf("/plans/%d/items", plan.ID), nutritionist, gin.H{
		"day_of_week": weekday,
		"meal_type":   "breakfast",
		"meal_name":   "Overnight oats",
		"time_of_day": "07:30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add item: %d %s", w.Code, w.Body.String())
	}
	var item models.MealPlanItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	w = do(t, r, http.MethodGet, "/me/plan/today", patient, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("plan today: %d %s", w.Code, w.Body.String())
	}
	var todayResp struct {
		Plan  *models.MealPlan      `json:"plan"`
		Items []models.MealPlanItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &todayResp); err != nil {
		t.Fatalf("decode today: %v", err)
	}
	if todayResp.Plan == nil || len(todayResp.Items) != 1 {
		t.Fatalf("today = plan %v, %d items", todayResp.Plan, len(todayResp.Items))
	}

	w = do(t, r, http.MethodPost, "/me/completions/toggle", patient, gin.H{"item_id": item.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", w.Code, w.Body.String())
	}
	var toggled struct {
		Completed bool `json:"completed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("toggle did not complete the meal")
	}

	w = do(t, r, http.MethodPost, "/me/water/increment", patient, gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("water increment: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/me/progress/daily", patient, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("daily progress: %d %s", w.Code, w.Body.String())
	}
	var daily struct {
		CompletedCount int `json:"completed_count"`
		TotalCount     int `json:"total_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &daily); err != nil {
		t.Fatalf("decode daily: %v", err)
	}
	if daily.CompletedCount != 1 || daily.TotalCount != 1 {
		t.Errorf("daily = %d/%d, want 1/1", daily.CompletedCount, daily.TotalCount)
	}

	w = do(t, r, http.MethodGet, "/me/summary/weekly", patient, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("weekly summary: %d %s", w.Code, w.Body.String())
	}
	var weekly struct {
		Days []struct {
			MealsCompleted int `json:"meals_completed"`
			WaterGlasses   int `json:"water_glasses"`
		} `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &weekly); err != nil {
		t.Fatalf("decode weekly: %v", err)
	}
	if len(weekly.Days) != 7 {
		t.Fatalf("weekly has %d days", len(weekly.Days))
	}
	var meals, glasses int
	for _, d := range weekly.Days {
		meals += d.MealsCompleted
		glasses += d.WaterGlasses
	}
	if meals != 1 || glasses != 1 {
		t.Errorf("week totals = %d meals, %d glasses; want 1 and 1", meals, glasses)
	}

	// the assignment event left a notification for the patient
	w = do(t, r, http.MethodGet, "/notifications", patient, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("notifications: %d %s", w.Code, w.Body.String())
	}
	var notes []models.Notification
	if err := json.Unmarshal(w.Body.Bytes(), &notes); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Type != "meal_plan_assigned" {
		t.Errorf("notifications = %+v, want one meal_plan_assigned", notes)
	}
}
