package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"car_tracker/internal/store"
)

// CategoryTotal is a spend subtotal for one category, in first-occurrence
// order of the input.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SpendTotal sums the monetary value of the given records. An empty input is
// legitimately zero (unlike efficiency, spending nothing is a real answer).
func SpendTotal(records []store.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount())
	}
	return total
}

// SpendByCategory groups spend by category (expense category, maintenance
// service type, or "fuel"), preserving the order categories first appear in.
func SpendByCategory(records []store.Record) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, r := range records {
		cat := r.Category()
		i, ok := index[cat]
		if !ok {
			index[cat] = len(out)
			out = append(out, CategoryTotal{Category: cat, Total: decimal.Zero})
			i = index[cat]
		}
		out[i].Total = out[i].Total.Add(r.Amount())
	}
	return out
}

// SpendTrend is the percentage change of the total inside [start, end)
// against the immediately preceding period of equal length. Undefined when
// the preceding period's total is zero.
func SpendTrend(records []store.Record, start, end time.Time) (float64, bool) {
	prevStart := start.Add(-end.Sub(start))

	current := decimal.Zero
	previous := decimal.Zero
	for _, r := range records {
		d := r.Date().Time
		switch {
		case !d.Before(start) && d.Before(end):
			current = current.Add(r.Amount())
		case !d.Before(prevStart) && d.Before(start):
			previous = previous.Add(r.Amount())
		}
	}
	if previous.IsZero() {
		return 0, false
	}
	change, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return change, true
}
