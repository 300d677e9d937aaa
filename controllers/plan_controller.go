package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"
	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type PlanController struct {
	Plans *services.PlanService
}

func NewPlanController(ps *services.PlanService) *PlanController {
	return &PlanController{Plans: ps}
}

// POST /plans (nutritionist)
func (pc *PlanController) CreatePlan(c *gin.Context) {
	var body struct {
		PatientID   uint   `json:"patient_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		StartDate   string `json:"start_date"` // "2006-01-02"
		EndDate     string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.ParseInLocation(dateLayout, body.StartDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := time.ParseInLocation(dateLayout, body.EndDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	nutritionistID := c.GetUint("userID")
	plan, err := pc.Plans.CreatePlan(nutritionistID, body.PatientID, body.Title, body.Description, start, end)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GET /plans — a nutritionist sees the plans they wrote, a patient the
// plans written for them.
func (pc *PlanController) ListPlans(c *gin.Context) {
	uid := c.GetUint("userID")

	var (
		plans []models.MealPlan
		err   error
	)
	if c.GetString("role") == models.RoleNutritionist {
		plans, err = pc.Plans.ListPlansForNutritionist(uid)
	} else {
		plans, err = pc.Plans.ListPlansForPatient(uid)
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GET /plans/:id
func (pc *PlanController) GetPlan(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	plan, err := pc.Plans.GetPlan(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DELETE /plans/:id — deactivates; rows are kept.
func (pc *PlanController) DeactivatePlan(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	if err := pc.Plans.DeactivatePlan(id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deactivated": true})
}

// POST /plans/:id/items
func (pc *PlanController) AddItem(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	var body struct {
		DayOfWeek int `json:"day_of_week"`
		services.ItemAttrs
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := pc.Plans.AddItem(id, body.DayOfWeek, body.ItemAttrs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DELETE /items/:id
func (pc *PlanController) RemoveItem(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	if err := pc.Plans.RemoveItem(id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GET /plans/:id/days/:day
func (pc *PlanController) ListDay(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}
	items, err := pc.Plans.ListItemsForDay(id, day)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /me/plan/today (patient) — the active plan's menu for today's weekday.
func (pc *PlanController) Today(c *gin.Context) {
	uid := c.GetUint("userID")

	plan, err := pc.Plans.ActivePlan(uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	if plan == nil {
		c.JSON(http.StatusOK, gin.H{"plan": nil, "items": []models.MealPlanItem{}})
		return
	}
	items, err := pc.Plans.ResolveToday(plan.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan, "items": items})
}

// paramUint parses a numeric path param, writing the 400 itself on failure.
func paramUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, err
	}
	return uint(v), nil
}

// queryUint is paramUint for optional query params; absent means 0.
func queryUint(c *gin.Context, name string) (uint, error) {
	q := c.Query(name)
	if q == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(q, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, err
	}
	return uint(v), nil
}
