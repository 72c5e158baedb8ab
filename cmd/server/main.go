package main

import (
	"log"
	"net/http"

	"car_tracker/internal/config"
	"car_tracker/internal/controllers"
	"car_tracker/internal/logger"
	"car_tracker/internal/middleware"
	"car_tracker/internal/notify"
	"car_tracker/internal/routes"
	"car_tracker/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	opts := config.LoadOptions()
	recordStore := store.New(config.DB)
	toasts := notify.New(opts.ToastTTL)
	controllers.Init(recordStore, toasts, opts)

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚗 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
