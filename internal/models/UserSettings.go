// internal/models/usersettings.go
package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserSettings holds per-user preferences and profile fields. Email lives on
// User and is read-only here (it comes from the identity layer).
type UserSettings struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"uniqueIndex"`
	Currency     string `json:"currency" gorm:"default:USD"`
	DistanceUnit string `json:"distance_unit" gorm:"default:km"`
	DarkMode     bool   `json:"dark_mode"`
	DisplayName  string `json:"display_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`

	// Price observations sorted descending by date; the head pre-fills the
	// price field of new fuel records.
	FuelPrices []FuelPriceEntry `gorm:"foreignKey:UserSettingsID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fuel_prices,omitempty"`
}

// FuelPriceEntry is one {date, price-per-liter} observation, recorded
// automatically on every fuel-record create.
type FuelPriceEntry struct {
	gorm.Model
	UserSettingsID uint            `json:"user_settings_id" gorm:"index"`
	Date           Date            `json:"date"`
	PricePerLiter  decimal.Decimal `json:"price_per_liter" gorm:"type:numeric"`
}
