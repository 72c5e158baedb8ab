package stats

import (
	"math"

	"car_tracker/internal/models"
)

// DefaultServiceInterval is the placeholder service schedule: a visit every
// 5000 km of odometer, configurable via SERVICE_INTERVAL_KM.
const DefaultServiceInterval = 5000

// NextServiceDistance is the distance remaining until the next
// multiple-of-interval odometer threshold. At an exact threshold the full
// interval is reported (the service is presumed just done). This policy does
// not consult maintenance history.
func NextServiceDistance(currentMileage float64, interval float64) float64 {
	if interval <= 0 {
		interval = DefaultServiceInterval
	}
	return interval - math.Mod(currentMileage, interval)
}

// MinNextService finds the car closest to its next service threshold.
// Undefined when there are no cars.
func MinNextService(cars []models.Car, interval float64) (models.Car, float64, bool) {
	if len(cars) == 0 {
		return models.Car{}, 0, false
	}
	best := cars[0]
	bestDist := NextServiceDistance(best.CurrentMileage, interval)
	for _, car := range cars[1:] {
		if d := NextServiceDistance(car.CurrentMileage, interval); d < bestDist {
			best, bestDist = car, d
		}
	}
	return best, bestDist, true
}
