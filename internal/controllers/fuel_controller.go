package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"car_tracker/internal/middleware"
	"car_tracker/internal/models"
	"car_tracker/internal/notify"
	"car_tracker/internal/store"
)

type fuelInput struct {
	Date          models.Date     `json:"date" binding:"required"`
	Liters        float64         `json:"liters" binding:"required"`
	PricePerLiter decimal.Decimal `json:"price_per_liter" binding:"required"`
	Mileage       float64         `json:"mileage"`
	Station       string          `json:"station"`
	Notes         string          `json:"notes"`
}

// CreateFuelRecord logs a fill-up. The total cost is computed server-side
// and the car's odometer ratchets up to the submitted reading.
func CreateFuelRecord(c *gin.Context) {
	var input fuelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fuel input: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	rec := models.FuelRecord{
		Date:          input.Date,
		Liters:        input.Liters,
		PricePerLiter: input.PricePerLiter,
		Mileage:       input.Mileage,
		Station:       input.Station,
		Notes:         input.Notes,
	}
	id, err := recordStore.Create(userID, carID, store.FuelRecord(&rec))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if toasts != nil {
		toasts.Show(userID, "Fuel record added", notify.SeveritySuccess)
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "record": rec})
}

func ListFuelRecords(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	records, err := recordStore.List(userID, carID, store.KindFuel)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func DeleteFuelRecord(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}
	recordID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := recordStore.Remove(userID, carID, store.KindFuel, recordID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fuel record deleted"})
}
