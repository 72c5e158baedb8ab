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

type maintenancePartInput struct {
	Name string          `json:"name" binding:"required"`
	Cost decimal.Decimal `json:"cost"`
}

type maintenanceInput struct {
	Date        models.Date            `json:"date" binding:"required"`
	ServiceType string                 `json:"service_type" binding:"required"`
	Cost        decimal.Decimal        `json:"cost"`
	Mileage     float64                `json:"mileage"`
	Provider    string                 `json:"provider"`
	Notes       string                 `json:"notes"`
	Parts       []maintenancePartInput `json:"parts"`
}

func CreateMaintenanceRecord(c *gin.Context) {
	var input maintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maintenance input: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	rec := models.MaintenanceRecord{
		Date:        input.Date,
		ServiceType: input.ServiceType,
		Cost:        input.Cost,
		Mileage:     input.Mileage,
		Provider:    input.Provider,
		Notes:       input.Notes,
	}
	for _, p := range input.Parts {
		rec.Parts = append(rec.Parts, models.MaintenancePart{Name: p.Name, Cost: p.Cost})
	}

	id, err := recordStore.Create(userID, carID, store.MaintenanceRecord(&rec))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if toasts != nil {
		toasts.Show(userID, "Maintenance record added", notify.SeveritySuccess)
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "record": rec})
}

func ListMaintenanceRecords(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	records, err := recordStore.List(userID, carID, store.KindMaintenance)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func DeleteMaintenanceRecord(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}
	recordID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := recordStore.Remove(userID, carID, store.KindMaintenance, recordID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance record deleted"})
}
