package routes

import (
	"github.com/gin-gonic/gin"

	"car_tracker/internal/controllers"
	"car_tracker/internal/middleware"
)

func StreamRoutes(r *gin.Engine) {
	ws := r.Group("/ws")
	ws.Use(middleware.RequireAuth())
	{
		ws.GET("/stream", controllers.HandleStream)
	}
}
