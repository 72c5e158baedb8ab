package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	gorm.Model
	CarID       uint            `json:"car_id" gorm:"index"`
	UserID      uint            `json:"user_id" gorm:"index"`
	Date        Date            `json:"date"`
	Category    string          `json:"category"` // "insurance", "parking", "toll", ...
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric"`
	Notes       string          `json:"notes"`
}
