package routes

import (
	"github.com/gin-gonic/gin"

	"car_tracker/internal/controllers"
	"car_tracker/internal/middleware"
)

func DashboardRoutes(r *gin.Engine) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireAuth())
	{
		dashboard.GET("/", controllers.GetDashboard)
		dashboard.GET("/trend", controllers.GetSpendTrend)
	}
}
