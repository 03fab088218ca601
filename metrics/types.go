// Package metrics provides descriptive statistics for latency series.
package metrics

import "fmt"

// Statistics summarizes a single latency series. All duration values are
// milliseconds.
type Statistics struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"` // sample standard deviation
}

// String returns a human-readable one-line summary.
func (s *Statistics) String() string {
	return fmt.Sprintf(
		"Count: %d | Mean: %.3fms | Median: %.3fms | Min: %.3fms | Max: %.3fms | StdDev: %.3fms",
		s.Count, s.Mean, s.Median, s.Min, s.Max, s.StdDev,
	)
}
