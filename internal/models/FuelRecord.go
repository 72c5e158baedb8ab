package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FuelRecord is one fill-up. TotalCost is always recomputed server-side as
// liters * price-per-liter; a client-supplied value is ignored. Records are
// immutable after creation (delete only, no update path).
type FuelRecord struct {
	gorm.Model
	CarID         uint            `json:"car_id" gorm:"index"`
	UserID        uint            `json:"user_id" gorm:"index"`
	Date          Date            `json:"date"`
	Liters        float64         `json:"liters"`
	PricePerLiter decimal.Decimal `json:"price_per_liter" gorm:"type:numeric"`
	TotalCost     decimal.Decimal `json:"total_cost" gorm:"type:numeric"`
	Mileage       float64         `json:"mileage"` // odometer reading at fill-up
	Station       string          `json:"station"`
	Notes         string          `json:"notes"`
}
