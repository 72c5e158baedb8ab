package routes

import (
	"github.com/gin-gonic/gin"

	"car_tracker/internal/controllers"
	"car_tracker/internal/middleware"
)

func SettingsRoutes(r *gin.Engine) {
	settings := r.Group("/settings")
	settings.Use(middleware.RequireAuth())
	{
		settings.GET("/", controllers.GetSettings)
		settings.PUT("/", controllers.UpdateSettings)
	}
}
