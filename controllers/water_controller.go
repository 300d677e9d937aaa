package controllers

import (
	"net/http"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"
	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

type WaterController struct {
	Water *services.WaterService
}

func NewWaterController(ws *services.WaterService) *WaterController {
	return &WaterController{Water: ws}
}

func waterResponse(c *gin.Context, log *models.WaterLog) {
	c.JSON(http.StatusOK, gin.H{"log": log, "goal_reached": log.GoalReached()})
}

// GET /me/water?date=2006-01-02 — virtual defaults when no row exists yet.
func (wc *WaterController) Get(c *gin.Context) {
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

	log, err := wc.Water.GetDailyLog(uid, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	waterResponse(c, log)
}

// POST /me/water/increment
func (wc *WaterController) Increment(c *gin.Context) {
	wc.adjust(c, wc.Water.Increment)
}

// POST /me/water/decrement
func (wc *WaterController) Decrement(c *gin.Context) {
	wc.adjust(c, wc.Water.Decrement)
}

func (wc *WaterController) adjust(c *gin.Context, op func(uint, time.Time) (*models.WaterLog, error)) {
	uid := c.GetUint("userID")

	var body struct {
		Date string `json:"date"` // optional, defaults to today
	}
	_ = c.ShouldBindJSON(&body)

	var date time.Time
	if body.Date != "" {
		var err error
		date, err = time.ParseInLocation(dateLayout, body.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
	}

	log, err := op(uid, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	waterResponse(c, log)
}
