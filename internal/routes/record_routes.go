package routes

import (
	"github.com/gin-gonic/gin"

	"car_tracker/internal/controllers"
	"car_tracker/internal/middleware"
)

// RecordRoutes mounts the three record collections under their car.
func RecordRoutes(r *gin.Engine) {
	records := r.Group("/cars/:carId")
	records.Use(middleware.RequireAuth())
	{
		records.POST("/fuel", controllers.CreateFuelRecord)
		records.GET("/fuel", controllers.ListFuelRecords)
		records.DELETE("/fuel/:id", controllers.DeleteFuelRecord)

		records.POST("/maintenance", controllers.CreateMaintenanceRecord)
		records.GET("/maintenance", controllers.ListMaintenanceRecords)
		records.DELETE("/maintenance/:id", controllers.DeleteMaintenanceRecord)

		records.POST("/expenses", controllers.CreateExpense)
		records.GET("/expenses", controllers.ListExpenses)
		records.DELETE("/expenses/:id", controllers.DeleteExpense)
	}
}
