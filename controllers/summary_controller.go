package controllers

import (
	"net/http"
	"time"

	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	Weekly *services.WeeklyService
}

func NewSummaryController(ws *services.WeeklyService) *SummaryController {
	return &SummaryController{Weekly: ws}
}

// GET /me/summary/weekly?date=2006-01-02
// Reports the Monday-start week containing the date (default: current week).
func (sc *SummaryController) Weekly7Days(c *gin.Context) {
	uid := c.GetUint("userID")

	if q := c.Query("date"); q != "" {
		date, err := time.ParseInLocation(dateLayout, q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		out, err := sc.Weekly.ComputeWeek(uid, date)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out, err := sc.Weekly.ComputeCurrentWeek(uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
