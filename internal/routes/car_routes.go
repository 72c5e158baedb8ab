package routes

import (
	"github.com/gin-gonic/gin"

	"car_tracker/internal/controllers"
	"car_tracker/internal/middleware"
)

func CarRoutes(r *gin.Engine) {
	cars := r.Group("/cars")
	cars.Use(middleware.RequireAuth())
	{
		cars.POST("/", controllers.CreateCar)
		cars.GET("/", controllers.GetMyCars)
		cars.PUT("/:carId", controllers.UpdateCar)
		cars.DELETE("/:carId", controllers.DeleteCar)
		cars.GET("/:carId/stats", controllers.GetCarStats)
	}
}
