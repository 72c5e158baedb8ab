package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car_tracker/internal/middleware"
	"car_tracker/internal/notify"
)

// GetToasts returns the caller's not-yet-expired toasts, oldest first. It is
// the polling fallback for clients without a live stream connection.
func GetToasts(c *gin.Context) {
	userID := middleware.UserID(c)
	if toasts == nil {
		c.JSON(http.StatusOK, gin.H{"toasts": []notify.Toast{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"toasts": toasts.Active(userID)})
}
