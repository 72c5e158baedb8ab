package stats

import (
	"math"
	"testing"

	"car_tracker/internal/models"
)

func fuel(mileage, liters float64) models.FuelRecord {
	return models.FuelRecord{Mileage: mileage, Liters: liters}
}

func TestFuelEfficiency(t *testing.T) {
	tests := []struct {
		name    string
		records []models.FuelRecord
		want    float64
		defined bool
	}{
		{
			name:    "two fill-ups",
			records: []models.FuelRecord{fuel(10000, 40), fuel(10500, 35)},
			want:    7.00,
			defined: true,
		},
		{
			name:    "three fill-ups",
			records: []models.FuelRecord{fuel(10000, 40), fuel(10500, 35), fuel(11000, 45)},
			want:    (35 + 45) / 1000.0 * 100,
			defined: true,
		},
		{
			name:    "empty",
			records: nil,
			defined: false,
		},
		{
			name:    "single record",
			records: []models.FuelRecord{fuel(10000, 40)},
			defined: false,
		},
		{
			name:    "zero distance",
			records: []models.FuelRecord{fuel(10000, 40), fuel(10000, 35)},
			defined: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defined := FuelEfficiency(tt.records)
			if defined != tt.defined {
				t.Fatalf("defined = %v, want %v", defined, tt.defined)
			}
			if !tt.defined {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("efficiency = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuelEfficiencyOrderIndependent(t *testing.T) {
	ordered := []models.FuelRecord{fuel(10000, 40), fuel(10500, 35), fuel(11200, 50)}
	shuffled := []models.FuelRecord{fuel(11200, 50), fuel(10000, 40), fuel(10500, 35)}

	a, okA := FuelEfficiency(ordered)
	b, okB := FuelEfficiency(shuffled)
	if !okA || !okB {
		t.Fatal("both inputs should yield a defined efficiency")
	}
	if a != b {
		t.Fatalf("efficiency depends on input order: %v vs %v", a, b)
	}
}

func TestFuelEfficiencyDoesNotMutateInput(t *testing.T) {
	records := []models.FuelRecord{fuel(11000, 30), fuel(10000, 40)}
	FuelEfficiency(records)
	if records[0].Mileage != 11000 {
		t.Fatal("input slice was reordered")
	}
}

func TestAverageEfficiency(t *testing.T) {
	fuelByCar := map[uint][]models.FuelRecord{
		1: {fuel(10000, 40), fuel(10500, 35)}, // 7.0
		2: {fuel(20000, 30), fuel(20500, 45)}, // 9.0
		3: {fuel(5000, 50)},                   // undefined, excluded
	}
	got, ok := AverageEfficiency(fuelByCar)
	if !ok {
		t.Fatal("expected a defined average")
	}
	if math.Abs(got-8.0) > 1e-9 {
		t.Fatalf("average = %v, want 8.0", got)
	}
}

func TestAverageEfficiencyAllUndefined(t *testing.T) {
	fuelByCar := map[uint][]models.FuelRecord{
		1: {fuel(5000, 50)},
		2: nil,
	}
	if _, ok := AverageEfficiency(fuelByCar); ok {
		t.Fatal("average over undefined-only cars must be undefined, not zero")
	}
}

func TestRoundMetric(t *testing.T) {
	if got := RoundMetric(7.006); got != 7.01 {
		t.Fatalf("RoundMetric(7.006) = %v, want 7.01", got)
	}
	if got := RoundMetric(7.0); got != 7.0 {
		t.Fatalf("RoundMetric(7.0) = %v, want 7.0", got)
	}
}
