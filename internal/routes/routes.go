package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Middleware must be in place before the routes are registered
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	CarRoutes(r)
	RecordRoutes(r)
	SettingsRoutes(r)
	DashboardRoutes(r)
	ToastRoutes(r)
	StreamRoutes(r)

	return r
}
