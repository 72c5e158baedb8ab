// Package stats holds the pure aggregation functions that turn raw record
// snapshots into dashboard metrics. Metrics whose preconditions are not met
// are reported as undefined (ok == false), never as zero, so an empty or
// errored snapshot can't masquerade as a perfect result.
package stats

import (
	"math"
	"sort"

	"car_tracker/internal/models"
)

// FuelEfficiency computes L/100km consumption from a car's fill-up history.
//
// Records are sorted by odometer reading, not by date: entry mistakes can
// put the two out of order and the odometer is the physically meaningful
// axis. Distance is the sum of adjacent mileage deltas and fuel is the sum
// of all liters except the first fill-up (the first tank was burned before
// the measured window opened).
//
// The result is undefined with fewer than two records, or when the
// accumulated distance or fuel is not positive. The value is unrounded;
// round at the presentation boundary only.
func FuelEfficiency(records []models.FuelRecord) (float64, bool) {
	if len(records) < 2 {
		return 0, false
	}

	sorted := make([]models.FuelRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Mileage < sorted[j].Mileage })

	var distance, fuel float64
	for i := 1; i < len(sorted); i++ {
		distance += sorted[i].Mileage - sorted[i-1].Mileage
		fuel += sorted[i].Liters
	}
	if distance <= 0 || fuel == 0 {
		return 0, false
	}
	return (fuel / distance) * 100, true
}

// AverageEfficiency is the simple mean of the per-car efficiencies, skipping
// cars whose own efficiency is undefined. Undefined when no car qualifies.
func AverageEfficiency(fuelByCar map[uint][]models.FuelRecord) (float64, bool) {
	var sum float64
	var n int
	for _, records := range fuelByCar {
		if eff, ok := FuelEfficiency(records); ok {
			sum += eff
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// RoundMetric rounds a metric to two decimals for display. Keep raw values
// everywhere else.
func RoundMetric(v float64) float64 {
	return math.Round(v*100) / 100
}
