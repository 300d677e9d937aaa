package controllers

import (
	"net/http"

	"github.com/robsoriano/wellness-hub-plan/config"
	"github.com/robsoriano/wellness-hub-plan/models"

	"github.com/gin-gonic/gin"
)

// GET /notifications
func ListNotifications(c *gin.Context) {
	uid := c.GetUint("userID")

	var rows []models.Notification
	if err := config.DB.
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Limit(50).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	uid := c.GetUint("userID")
	id := c.Param("id")

	res := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, uid).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// POST /notifications/toggle — enable or disable push across the user's
// registered devices.
func ToggleNotifications(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := config.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", uid).
		Update("enabled", req.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
