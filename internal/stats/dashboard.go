package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"car_tracker/internal/models"
	"car_tracker/internal/store"
)

// DefaultActivityFeedSize is how many recent records the dashboard shows.
const DefaultActivityFeedSize = 5

// ActivityEntry is one line of the recent-activity feed, tagged with the
// kind it came from so the client can pick an icon.
type ActivityEntry struct {
	Kind   store.Kind      `json:"kind"`
	CarID  uint            `json:"car_id"`
	Date   models.Date     `json:"date"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Dashboard is the cross-car summary shown on the landing page. Undefined
// metrics are nil pointers, never zero values.
type Dashboard struct {
	CarCount        int             `json:"car_count"`
	TotalSpend      decimal.Decimal `json:"total_spend"`
	AvgEfficiency   *float64        `json:"avg_efficiency,omitempty"`
	NextServiceKm   *float64        `json:"next_service_km,omitempty"`
	NextServiceCar  *uint           `json:"next_service_car,omitempty"`
	ByCategory      []CategoryTotal `json:"by_category"`
	RecentActivity  []ActivityEntry `json:"recent_activity"`
	ServiceInterval float64         `json:"service_interval"`
}

// BuildDashboard composes the per-metric aggregators over all of a user's
// cars. records carries every record of every car; fuelByCar carries the
// fuel history per car for the efficiency mean.
func BuildDashboard(cars []models.Car, fuelByCar map[uint][]models.FuelRecord, records []store.Record, interval float64, feedSize int) Dashboard {
	if interval <= 0 {
		interval = DefaultServiceInterval
	}
	if feedSize <= 0 {
		feedSize = DefaultActivityFeedSize
	}

	d := Dashboard{
		CarCount:        len(cars),
		TotalSpend:      SpendTotal(records),
		ByCategory:      SpendByCategory(records),
		RecentActivity:  RecentActivity(records, feedSize),
		ServiceInterval: interval,
	}
	if eff, ok := AverageEfficiency(fuelByCar); ok {
		rounded := RoundMetric(eff)
		d.AvgEfficiency = &rounded
	}
	if car, dist, ok := MinNextService(cars, interval); ok {
		id := car.ID
		d.NextServiceKm = &dist
		d.NextServiceCar = &id
	}
	return d
}

// RecentActivity merges the record streams, newest first, keeping the first
// n entries.
func RecentActivity(records []store.Record, n int) []ActivityEntry {
	sorted := make([]store.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date().After(sorted[j].Date().Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]ActivityEntry, len(sorted))
	for i, r := range sorted {
		out[i] = ActivityEntry{
			Kind:   r.Kind,
			CarID:  recordCarID(r),
			Date:   r.Date(),
			Label:  r.Label(),
			Amount: r.Amount(),
		}
	}
	return out
}

func recordCarID(r store.Record) uint {
	switch r.Kind {
	case store.KindFuel:
		return r.Fuel.CarID
	case store.KindMaintenance:
		return r.Maintenance.CarID
	case store.KindExpense:
		return r.Expense.CarID
	}
	return 0
}
