package services

import (
	"errors"

	"github.com/robsoriano/wellness-hub-plan/models"

	"gorm.io/gorm"
)

// TemplateService manages reusable meal bundles. Templates are deep value
// snapshots: applying one clones its items, and editing a template later
// never touches plans it was applied to (or vice versa).
type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) CreateTemplate(nutritionistID uint, name, description, category string) (*models.MealTemplate, error) {
	if name == "" {
		return nil, validationErr("template name is required")
	}
	if category != "" && !models.ValidTemplateCategory(category) {
		return nil, validationErr("unknown template category %q", category)
	}
	tpl := &models.MealTemplate{
		NutritionistID: nutritionistID,
		Name:           name,
		Description:    description,
		Category:       category,
	}
	if err := s.db.Create(tpl).Error; err != nil {
		return nil, storeErr("create template", err)
	}
	return tpl, nil
}

func (s *TemplateService) GetTemplate(templateID uint) (*models.MealTemplate, error) {
	var tpl models.MealTemplate
	err := s.db.Preload("Items").First(&tpl, templateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "template", ID: templateID}
	}
	if err != nil {
		return nil, storeErr("load template", err)
	}
	return &tpl, nil
}

func (s *TemplateService) ListTemplates(nutritionistID uint) ([]models.MealTemplate, error) {
	var tpls []models.MealTemplate
	err := s.db.
		Preload("Items").
		Where("nutritionist_id = ?", nutritionistID).
		Order("created_at DESC").
		Find(&tpls).Error
	if err != nil {
		return nil, storeErr("list templates", err)
	}
	return tpls, nil
}

func (s *TemplateService) DeleteTemplate(templateID uint) error {
	if _, err := s.GetTemplate(templateID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_template_id = ?", templateID).
			Delete(&models.MealTemplateItem{}).Error; err != nil {
			return storeErr("delete template items", err)
		}
		if err := tx.Delete(&models.MealTemplate{}, templateID).Error; err != nil {
			return storeErr("delete template", err)
		}
		return nil
	})
}

func (s *TemplateService) AddTemplateItem(templateID uint, attrs ItemAttrs) (*models.MealTemplateItem, error) {
	if !models.ValidMealType(attrs.MealType) {
		return nil, validationErr("unknown meal type %q", attrs.MealType)
	}
	if attrs.MealName == "" {
		return nil, validationErr("meal name is required")
	}
	if _, err := s.GetTemplate(templateID); err != nil {
		return nil, err
	}

	item := &models.MealTemplateItem{
		MealTemplateID: templateID,
		MealType:       attrs.MealType,
		MealName:       attrs.MealName,
		Description:    attrs.Description,
		TimeOfDay:      attrs.TimeOfDay,
		Calories:       attrs.Calories,
		Protein:        attrs.Protein,
		Carbs:          attrs.Carbs,
		Fats:           attrs.Fats,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, storeErr("create template item", err)
	}
	return item, nil
}

func (s *TemplateService) RemoveTemplateItem(itemID uint) error {
	res := s.db.Delete(&models.MealTemplateItem{}, itemID)
	if res.Error != nil {
		return storeErr("delete template item", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "template item", ID: itemID}
	}
	return nil
}

// ApplyTemplate clones every template item onto targetDay of the plan as one
// transactional bulk insert. Additive: whatever is already scheduled on that
// day stays. Not idempotent — applying twice duplicates the items.
func (s *TemplateService) ApplyTemplate(templateID, planID uint, targetDay int) ([]models.MealPlanItem, error) {
	if targetDay < 0 || targetDay > 6 {
		return nil, validationErr("day of week must be between 0 and 6")
	}

	tpl, err := s.GetTemplate(templateID)
	if err != nil {
		return nil, err
	}
	if len(tpl.Items) == 0 {
		return nil, validationErr("this template has no meals")
	}

	var plan models.MealPlan
	if err := s.db.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "meal plan", ID: planID}
		}
		return nil, storeErr("load meal plan", err)
	}

	items := make([]models.MealPlanItem, 0, len(tpl.Items))
	for _, it := range tpl.Items {
		items = append(items, models.MealPlanItem{
			MealPlanID:  planID,
			DayOfWeek:   targetDay,
			MealType:    it.MealType,
			MealName:    it.MealName,
			Description: it.Description,
			TimeOfDay:   it.TimeOfDay,
			Calories:    it.Calories,
			Protein:     it.Protein,
			Carbs:       it.Carbs,
			Fats:        it.Fats,
		})
	}

	// One transaction: a partial failure must leave zero orphan rows, not a
	// half-applied day.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, storeErr("apply template", err)
	}
	return items, nil
}

// SaveAsTemplate snapshots a plan's items into a fresh template. With a
// sourceDay only that weekday is copied; nil copies the whole plan.
func (s *TemplateService) SaveAsTemplate(
	planID uint,
	sourceDay *int,
	nutritionistID uint,
	name, description, category string,
) (*models.MealTemplate, error) {
	if name == "" {
		return nil, validationErr("template name is required")
	}
	if category != "" && !models.ValidTemplateCategory(category) {
		return nil, validationErr("unknown template category %q", category)
	}
	if sourceDay != nil && (*sourceDay < 0 || *sourceDay > 6) {
		return nil, validationErr("day of week must be between 0 and 6")
	}

	var plan models.MealPlan
	if err := s.db.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "meal plan", ID: planID}
		}
		return nil, storeErr("load meal plan", err)
	}

	q := s.db.Where("meal_plan_id = ?", planID)
	if sourceDay != nil {
		q = q.Where("day_of_week = ?", *sourceDay)
	}
	var planItems []models.MealPlanItem
	if err := q.Order("id ASC").Find(&planItems).Error; err != nil {
		return nil, storeErr("load plan items", err)
	}
	if len(planItems) == 0 {
		return nil, validationErr("no meals found to save")
	}

	tpl := &models.MealTemplate{
		NutritionistID: nutritionistID,
		Name:           name,
		Description:    description,
		Category:       category,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tpl).Error; err != nil {
			return err
		}
		items := make([]models.MealTemplateItem, 0, len(planItems))
		for _, it := range planItems {
			items = append(items, models.MealTemplateItem{
				MealTemplateID: tpl.ID,
				MealType:       it.MealType,
				MealName:       it.MealName,
				Description:    it.Description,
				TimeOfDay:      it.TimeOfDay,
				Calories:       it.Calories,
				Protein:        it.Protein,
				Carbs:          it.Carbs,
				Fats:           it.Fats,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		tpl.Items = items
		return nil
	})
	if err != nil {
		return nil, storeErr("save as template", err)
	}
	return tpl, nil
}

// CopyDay duplicates every item on fromDay into toDay as new, independent
// rows — nothing is moved or shared.
func (s *TemplateService) CopyDay(planID uint, fromDay, toDay int) ([]models.MealPlanItem, error) {
	if fromDay < 0 || fromDay > 6 || toDay < 0 || toDay > 6 {
		return nil, validationErr("day of week must be between 0 and 6")
	}
	if fromDay == toDay {
		return nil, validationErr("source and target day are the same")
	}

	var plan models.MealPlan
	if err := s.db.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "meal plan", ID: planID}
		}
		return nil, storeErr("load meal plan", err)
	}

	var src []models.MealPlanItem
	if err := s.db.
		Where("meal_plan_id = ? AND day_of_week = ?", planID, fromDay).
		Order("id ASC").
		Find(&src).Error; err != nil {
		return nil, storeErr("load source day", err)
	}
	if len(src) == 0 {
		return nil, validationErr("no meals to copy from this day")
	}

	items := make([]models.MealPlanItem, 0, len(src))
	for _, it := range src {
		items = append(items, models.MealPlanItem{
			MealPlanID:  planID,
			DayOfWeek:   toDay,
			MealType:    it.MealType,
			MealName:    it.MealName,
			Description: it.Description,
			TimeOfDay:   it.TimeOfDay,
			Calories:    it.Calories,
			Protein:     it.Protein,
			Carbs:       it.Carbs,
			Fats:        it.Fats,
		})
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, storeErr("copy day", err)
	}
	return items, nil
}
