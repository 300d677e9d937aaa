package services

import (
	"errors"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"
	"github.com/robsoriano/wellness-hub-plan/utils"

	"gorm.io/gorm"
)

// PlanService owns the weekly-recurrence schedule: a plan's items are a
// weekly template evaluated lazily against the weekday, never materialized
// per calendar date.
type PlanService struct {
	db  *gorm.DB
	now Clock
}

func NewPlanService(db *gorm.DB, clock Clock) *PlanService {
	return &PlanService{db: db, now: orSystem(clock)}
}

// ItemAttrs is the caller-supplied shape of one scheduled meal.
type ItemAttrs struct {
	MealType    string   `json:"meal_type"`
	MealName    string   `json:"meal_name"`
	Description string   `json:"description"`
	TimeOfDay   string   `json:"time_of_day"` // "HH:MM", empty = untimed
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fats        *float64 `json:"fats"`
}

func (s *PlanService) CreatePlan(
	nutritionistID, patientID uint,
	title, description string,
	startDate, endDate time.Time,
) (*models.MealPlan, error) {
	if title == "" {
		return nil, validationErr("plan title is required")
	}
	if dayStart(endDate).Before(dayStart(startDate)) {
		return nil, validationErr("end date must be on or after start date")
	}

	plan := &models.MealPlan{
		PatientID:      patientID,
		NutritionistID: nutritionistID,
		Title:          title,
		Description:    description,
		StartDate:      dayStart(startDate),
		EndDate:        dayStart(endDate),
		IsActive:       true,
	}
	if err := s.db.Create(plan).Error; err != nil {
		return nil, storeErr("create meal plan", err)
	}

	// Side effects stay out of the critical path: the plan is created even
	// if nobody hears about it.
	EmitEvent(patientID, EventMealPlanAssigned, "New meal plan",
		"Your nutritionist assigned you a new meal plan: "+title, plan.ID)
	var patient models.User
	if err := s.db.First(&patient, patientID).Error; err == nil && patient.Email != "" {
		go utils.SendPlanAssignedEmail(patient.Email, title)
	}

	return plan, nil
}

func (s *PlanService) GetPlan(planID uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.Preload("Items").First(&plan, planID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "meal plan", ID: planID}
	}
	if err != nil {
		return nil, storeErr("load meal plan", err)
	}
	return &plan, nil
}

func (s *PlanService) ListPlansForPatient(patientID uint) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, storeErr("list patient plans", err)
	}
	return plans, nil
}

func (s *PlanService) ListPlansForNutritionist(nutritionistID uint) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.
		Where("nutritionist_id = ?", nutritionistID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, storeErr("list nutritionist plans", err)
	}
	return plans, nil
}

// DeactivatePlan is the normal-flow "delete": the rows stay, the plan just
// stops resolving as the patient's active plan.
func (s *PlanService) DeactivatePlan(planID uint) error {
	res := s.db.Model(&models.MealPlan{}).
		Where("id = ?", planID).
		Update("is_active", false)
	if res.Error != nil {
		return storeErr("deactivate meal plan", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "meal plan", ID: planID}
	}
	return nil
}

// AddItem schedules a meal on a weekday. No uniqueness across (day, type):
// two snacks on Monday is a fine schedule.
func (s *PlanService) AddItem(planID uint, dayOfWeek int, attrs ItemAttrs) (*models.MealPlanItem, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, validationErr("day of week must be between 0 and 6")
	}
	if !models.ValidMealType(attrs.MealType) {
		return nil, validationErr("unknown meal type %q", attrs.MealType)
	}
	if attrs.MealName == "" {
		return nil, validationErr("meal name is required")
	}
	if _, err := s.GetPlan(planID); err != nil {
		return nil, err
	}

	item := &models.MealPlanItem{
		MealPlanID:  planID,
		DayOfWeek:   dayOfWeek,
		MealType:    attrs.MealType,
		MealName:    attrs.MealName,
		Description: attrs.Description,
		TimeOfDay:   attrs.TimeOfDay,
		Calories:    attrs.Calories,
		Protein:     attrs.Protein,
		Carbs:       attrs.Carbs,
		Fats:        attrs.Fats,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, storeErr("create meal plan item", err)
	}
	return item, nil
}

// ListItemsForDay returns the weekday's items ordered by time ascending;
// untimed items sort after timed ones, keeping insertion order among
// themselves.
func (s *PlanService) ListItemsForDay(planID uint, day int) ([]models.MealPlanItem, error) {
	if day < 0 || day > 6 {
		return nil, validationErr("day of week must be between 0 and 6")
	}
	var items []models.MealPlanItem
	err := s.db.
		Where("meal_plan_id = ? AND day_of_week = ?", planID, day).
		Order("CASE WHEN time_of_day = '' THEN 1 ELSE 0 END, time_of_day ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, storeErr("list items for day", err)
	}
	return items, nil
}

// RemoveItem deletes a single item together with its completion rows.
// Completion rows that slip through stay orphaned and are ignored by reads.
func (s *PlanService) RemoveItem(itemID uint) error {
	var item models.MealPlanItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "meal plan item", ID: itemID}
		}
		return storeErr("load meal plan item", err)
	}

	if err := s.db.
		Where("meal_plan_item_id = ?", itemID).
		Delete(&models.MealCompletion{}).Error; err != nil {
		return storeErr("delete item completions", err)
	}
	if err := s.db.Delete(&models.MealPlanItem{}, itemID).Error; err != nil {
		return storeErr("delete meal plan item", err)
	}
	return nil
}

// ResolveDate maps a calendar date onto the recurring schedule. Same weekday,
// same answer, every week: there is no per-date instance of the menu.
func (s *PlanService) ResolveDate(planID uint, date time.Time) ([]models.MealPlanItem, error) {
	return s.ListItemsForDay(planID, weekdayIndex(date))
}

func (s *PlanService) ResolveToday(planID uint) ([]models.MealPlanItem, error) {
	return s.ResolveDate(planID, s.now())
}

// ActivePlan returns the patient's first active plan, or nil when none.
func (s *PlanService) ActivePlan(patientID uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Order("created_at ASC").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load active plan", err)
	}
	return &plan, nil
}
