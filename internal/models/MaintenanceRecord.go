package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaintenanceRecord is one service event. When part line items are present
// their costs must sum to Cost (validated on create).
type MaintenanceRecord struct {
	gorm.Model
	CarID       uint            `json:"car_id" gorm:"index"`
	UserID      uint            `json:"user_id" gorm:"index"`
	Date        Date            `json:"date"`
	ServiceType string          `json:"service_type"` // "Oil Change", "Tire Rotation", ...
	Cost        decimal.Decimal `json:"cost" gorm:"type:numeric"`
	Mileage     float64         `json:"mileage"`
	Provider    string          `json:"provider"`
	Notes       string          `json:"notes"`

	Parts []MaintenancePart `gorm:"foreignKey:MaintenanceRecordID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parts,omitempty"`
}

// MaintenancePart is one {part, cost} line item of a maintenance record.
type MaintenancePart struct {
	gorm.Model
	MaintenanceRecordID uint            `json:"maintenance_record_id" gorm:"index"`
	Name                string          `json:"name"`
	Cost                decimal.Decimal `json:"cost" gorm:"type:numeric"`
}
