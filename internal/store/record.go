package store

import (
	"github.com/shopspring/decimal"

	"car_tracker/internal/models"
)

// Kind tags the three persisted record types. One access contract covers all
// of them instead of per-type copies.
type Kind string

const (
	KindFuel        Kind = "fuel"
	KindMaintenance Kind = "maintenance"
	KindExpense     Kind = "expense"
)

// ValidKind reports whether k names a known record kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindFuel, KindMaintenance, KindExpense:
		return true
	}
	return false
}

// Record is the tagged union over fuel, maintenance and expense records.
// Exactly one of the pointers is set, matching Kind.
type Record struct {
	Kind        Kind                      `json:"kind"`
	Fuel        *models.FuelRecord        `json:"fuel,omitempty"`
	Maintenance *models.MaintenanceRecord `json:"maintenance,omitempty"`
	Expense     *models.Expense           `json:"expense,omitempty"`
}

func FuelRecord(r *models.FuelRecord) Record {
	return Record{Kind: KindFuel, Fuel: r}
}

func MaintenanceRecord(r *models.MaintenanceRecord) Record {
	return Record{Kind: KindMaintenance, Maintenance: r}
}

func ExpenseRecord(r *models.Expense) Record {
	return Record{Kind: KindExpense, Expense: r}
}

func (r Record) ID() uint {
	switch r.Kind {
	case KindFuel:
		return r.Fuel.ID
	case KindMaintenance:
		return r.Maintenance.ID
	case KindExpense:
		return r.Expense.ID
	}
	return 0
}

func (r Record) Date() models.Date {
	switch r.Kind {
	case KindFuel:
		return r.Fuel.Date
	case KindMaintenance:
		return r.Maintenance.Date
	case KindExpense:
		return r.Expense.Date
	}
	return models.Date{}
}

// Amount is the monetary value of the record regardless of kind: total cost
// for fuel, cost for maintenance, amount for expenses.
func (r Record) Amount() decimal.Decimal {
	switch r.Kind {
	case KindFuel:
		return r.Fuel.TotalCost
	case KindMaintenance:
		return r.Maintenance.Cost
	case KindExpense:
		return r.Expense.Amount
	}
	return decimal.Zero
}

// Category is the grouping key for spend aggregation: the expense category,
// the maintenance service type, or "fuel".
func (r Record) Category() string {
	switch r.Kind {
	case KindFuel:
		return "fuel"
	case KindMaintenance:
		return r.Maintenance.ServiceType
	case KindExpense:
		return r.Expense.Category
	}
	return ""
}

// Label is the human-readable line for activity feeds.
func (r Record) Label() string {
	switch r.Kind {
	case KindFuel:
		if r.Fuel.Station != "" {
			return "Fuel at " + r.Fuel.Station
		}
		return "Fuel fill-up"
	case KindMaintenance:
		return r.Maintenance.ServiceType
	case KindExpense:
		return r.Expense.Description
	}
	return ""
}
