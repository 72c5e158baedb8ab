package routes

import (
	"github.com/gin-gonic/gin"

	"car_tracker/internal/controllers"
	"car_tracker/internal/middleware"
)

func ToastRoutes(r *gin.Engine) {
	toasts := r.Group("/toasts")
	toasts.Use(middleware.RequireAuth())
	{
		toasts.GET("/", controllers.GetToasts)
	}
}
