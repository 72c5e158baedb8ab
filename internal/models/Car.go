// internal/models/car.go
package models

import (
	"gorm.io/gorm"
)

// Car is a registered vehicle owned by exactly one user. CurrentMileage is a
// monotonic ratchet: it only ever moves up, driven by incoming fuel-record
// odometer readings (see store.Create).
type Car struct {
	gorm.Model
	UserID         uint    `json:"user_id" gorm:"index"`
	Make           string  `json:"make" binding:"required"`
	CarModel       string  `json:"model" gorm:"column:car_model" binding:"required"`
	Year           int     `json:"year" binding:"required"`
	LicensePlate   string  `json:"license_plate"`
	CurrentMileage float64 `json:"current_mileage"`
	ImageURL       string  `json:"image_url"`

	FuelRecords        []FuelRecord        `gorm:"foreignKey:CarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fuel_records,omitempty"`
	MaintenanceRecords []MaintenanceRecord `gorm:"foreignKey:CarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"maintenance_records,omitempty"`
	Expenses           []Expense           `gorm:"foreignKey:CarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"expenses,omitempty"`
}
