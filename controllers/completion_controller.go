package controllers

import (
	"net/http"
	"time"

	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

type CompletionController struct {
	Completions *services.CompletionService
	Plans       *services.PlanService
}

func NewCompletionController(cs *services.CompletionService, ps *services.PlanService) *CompletionController {
	return &CompletionController{Completions: cs, Plans: ps}
}

// POST /me/completions/toggle
func (cc *CompletionController) Toggle(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		ItemID uint   `json:"item_id"`
		Date   string `json:"date"` // optional, "2006-01-02", defaults to today
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if body.Date != "" {
		var err error
		date, err = time.ParseInLocation(dateLayout, body.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
	}

	completed, err := cc.Completions.ToggleCompletion(uid, body.ItemID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

// GET /me/progress/daily?date=2006-01-02&plan_id=N
// plan_id defaults to the patient's active plan.
func (cc *CompletionController) Daily(c *gin.Context) {
	uid := c.GetUint("userID")

	var date time.Time
	if q := c.Query("date"); q != "" {
		var err error
		date, err = time.ParseInLocation(dateLayout, q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
	}

	planID, err := queryUint(c, "plan_id")
	if err != nil {
		return
	}
	if planID == 0 {
		plan, err := cc.Plans.ActivePlan(uid)
		if err != nil {
			respondErr(c, err)
			return
		}
		if plan == nil {
			c.JSON(http.StatusOK, services.DailyChecklist{Items: []services.ChecklistItem{}})
			return
		}
		planID = plan.ID
	}

	out, err := cc.Completions.DailyProgress(uid, planID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
