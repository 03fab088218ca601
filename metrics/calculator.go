package metrics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Calculator computes descriptive statistics from latency series.
type Calculator struct{}

// NewCalculator creates a new statistics calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute summarizes values, which it does not modify. It returns nil for
// an empty series. StdDev uses Bessel's correction and is 0 for a single
// sample.
func (c *Calculator) Compute(values []float64) *Statistics {
	if len(values) == 0 {
		return nil
	}

	s := &Statistics{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Median: c.median(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}

// median averages the two middle order statistics for even counts.
func (c *Calculator) median(values []float64) float64 {
	// Create sorted copy for the order statistics
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
