package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car_tracker/internal/config"
	"car_tracker/internal/middleware"
	"car_tracker/internal/models"
	"car_tracker/internal/notify"
	"car_tracker/internal/stats"
)

// CreateCar registers a new car for the authenticated user.
func CreateCar(c *gin.Context) {
	var input struct {
		Make           string  `json:"make" binding:"required"`
		Model          string  `json:"model" binding:"required"`
		Year           int     `json:"year" binding:"required"`
		LicensePlate   string  `json:"license_plate"`
		CurrentMileage float64 `json:"current_mileage"`
		ImageURL       string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car input: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	car := models.Car{
		UserID:         userID,
		Make:           input.Make,
		CarModel:       input.Model,
		Year:           input.Year,
		LicensePlate:   input.LicensePlate,
		CurrentMileage: input.CurrentMileage,
		ImageURL:       input.ImageURL,
	}

	if err := config.DB.Create(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create car: " + err.Error()})
		return
	}

	if toasts != nil {
		toasts.Show(userID, "Car added", notify.SeveritySuccess)
	}
	c.JSON(http.StatusCreated, gin.H{"car": car})
}

func GetMyCars(c *gin.Context) {
	userID := middleware.UserID(c)

	var cars []models.Car
	if err := config.DB.Where("user_id = ?", userID).Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching cars"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// UpdateCar applies partial edits to a car the caller owns. The body never
// binds into the persisted model directly, so identity fields (ID, UserID)
// cannot be rebound by the client.
func UpdateCar(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	var car models.Car
	if err := config.DB.Where("id = ? AND user_id = ?", carID, userID).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var input struct {
		Make           string   `json:"make"`
		Model          string   `json:"model"`
		Year           int      `json:"year"`
		LicensePlate   string   `json:"license_plate"`
		CurrentMileage *float64 `json:"current_mileage"`
		ImageURL       string   `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update: " + err.Error()})
		return
	}

	if input.Make != "" {
		car.Make = input.Make
	}
	if input.Model != "" {
		car.CarModel = input.Model
	}
	if input.Year != 0 {
		car.Year = input.Year
	}
	if input.LicensePlate != "" {
		car.LicensePlate = input.LicensePlate
	}
	if input.ImageURL != "" {
		car.ImageURL = input.ImageURL
	}
	// The odometer only moves forward
	if input.CurrentMileage != nil && *input.CurrentMileage > car.CurrentMileage {
		car.CurrentMileage = *input.CurrentMileage
	}

	if err := config.DB.Save(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"car": car})
}

// DeleteCar removes a car and everything recorded against it.
func DeleteCar(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	if err := recordStore.DeleteCar(userID, carID); err != nil {
		respondStoreError(c, err)
		return
	}

	if toasts != nil {
		toasts.Show(userID, "Car deleted", notify.SeverityInfo)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car deleted"})
}

// GetCarStats reports the per-car derived metrics: fuel efficiency, next
// service distance and the spend summary.
func GetCarStats(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	var car models.Car
	if err := config.DB.Where("id = ? AND user_id = ?", carID, userID).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var fuel []models.FuelRecord
	if err := config.DB.Where("user_id = ? AND car_id = ?", userID, carID).Find(&fuel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching fuel records"})
		return
	}
	records, err := recordStore.ListAll(userID, carID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	resp := gin.H{
		"car":             car,
		"next_service_km": stats.NextServiceDistance(car.CurrentMileage, options.ServiceIntervalKm),
		"total_spend":     stats.SpendTotal(records),
		"by_category":     stats.SpendByCategory(records),
	}
	if eff, defined := stats.FuelEfficiency(fuel); defined {
		resp["fuel_efficiency"] = stats.RoundMetric(eff)
	}
	c.JSON(http.StatusOK, resp)
}
