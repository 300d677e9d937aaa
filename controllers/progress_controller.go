package controllers

import (
	"net/http"
	"time"

	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(ps *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: ps}
}

// POST /me/progress-logs
func (pc *ProgressController) AddLog(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		Date string `json:"date"` // optional, defaults to today
		services.ProgressEntry
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

	row, err := pc.Progress.AddLog(uid, date, body.ProgressEntry)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// GET /me/progress-logs
func (pc *ProgressController) ListLogs(c *gin.Context) {
	logs, err := pc.Progress.ListLogs(c.GetUint("userID"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GET /me/streak
func (pc *ProgressController) Streak(c *gin.Context) {
	streak, err := pc.Progress.Streak(c.GetUint("userID"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}
