package controllers

import (
	"net/http"

	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

// respondErr maps engine errors onto HTTP statuses. Validation reasons are
// user-displayable and passed through verbatim.
func respondErr(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
