// Package stats summarizes the values of a record subset.
package stats

import (
	"sort"

	"github.com/okian/rankview/internal/domain/model"
)

// Summary holds descriptive statistics over record values.
// The zero Summary is the empty summary.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Empty reports whether the summary covers no records.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Compute summarizes the values of records. An empty input yields the empty
// Summary rather than dividing by zero.
func Compute(records []model.Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Value
	}
	return Of(values)
}

// Of summarizes a slice of values. The slice is not modified.
func Of(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	mid := n / 2
	median := sorted[mid]
	if n%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return Summary{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   sum / float64(n),
		Median: median,
	}
}
