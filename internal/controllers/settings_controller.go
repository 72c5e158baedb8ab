package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"car_tracker/internal/config"
	"car_tracker/internal/middleware"
	"car_tracker/internal/models"
	"car_tracker/internal/notify"
)

// GetSettings returns the user's settings together with the read-only email
// and the fuel-price history, newest observation first.
func GetSettings(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	settings, err := loadOrCreateSettings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching settings"})
		return
	}

	resp := gin.H{
		"settings": settings,
		"email":    user.Email,
	}
	if len(settings.FuelPrices) > 0 {
		resp["latest_fuel_price"] = settings.FuelPrices[0].PricePerLiter
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSettings saves preferences and profile fields. Email is sourced from
// the account and never writable here; the price history is maintained by
// fuel creates, not by this endpoint.
func UpdateSettings(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		Currency     string `json:"currency"`
		DistanceUnit string `json:"distance_unit"`
		DarkMode     *bool  `json:"dark_mode"`
		DisplayName  string `json:"display_name"`
		Address      string `json:"address"`
		Phone        string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings input: " + err.Error()})
		return
	}

	settings, err := loadOrCreateSettings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching settings"})
		return
	}

	if input.Currency != "" {
		settings.Currency = input.Currency
	}
	if input.DistanceUnit != "" {
		settings.DistanceUnit = input.DistanceUnit
	}
	if input.DarkMode != nil {
		settings.DarkMode = *input.DarkMode
	}
	if input.DisplayName != "" {
		settings.DisplayName = input.DisplayName
	}
	if input.Address != "" {
		settings.Address = input.Address
	}
	if input.Phone != "" {
		settings.Phone = input.Phone
	}

	if err := config.DB.Save(settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving settings"})
		return
	}

	if toasts != nil {
		toasts.Show(userID, "Settings saved", notify.SeveritySuccess)
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func loadOrCreateSettings(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := config.DB.Where("user_id = ?", userID).
		Preload("FuelPrices", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{UserID: userID}
		if err := config.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
