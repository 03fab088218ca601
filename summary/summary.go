// Package summary assembles the analysis result: a JSON-serializable
// record and the plain text report.
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skylenet/blockstat/analysis"
	"github.com/skylenet/blockstat/metrics"
)

// Metric display names, used as keys in Summary.Metrics and as report
// section headers.
const (
	MetricBuildPayload      = "Build Payload Time"
	MetricStateRoot         = "State Root Computation"
	MetricExplicitStateRoot = "Explicit State Root Task"
	MetricBlockAdded        = "Block Added to Canonical Chain"
)

// metricOrder fixes the report section ordering.
var metricOrder = []string{
	MetricBuildPayload,
	MetricStateRoot,
	MetricExplicitStateRoot,
	MetricBlockAdded,
}

// Summary is the complete result of one log analysis.
type Summary struct {
	Label      *string                        `json:"label"`
	LogFile    string                         `json:"log_file"`
	BlockRange *analysis.BlockRange           `json:"block_range"`
	Metrics    map[string]*metrics.Statistics `json:"metrics"`
}

// New builds the summary for one analyzed log. An empty label serializes
// as null, metrics of empty series as null entries.
func New(label, logFile string, rng *analysis.BlockRange, series *analysis.Series) *Summary {
	calc := metrics.NewCalculator()
	s := &Summary{
		LogFile:    logFile,
		BlockRange: rng,
		Metrics: map[string]*metrics.Statistics{
			MetricBuildPayload:      calc.Compute(series.BuildTimes),
			MetricStateRoot:         calc.Compute(series.StateRootTimes),
			MetricExplicitStateRoot: calc.Compute(series.ExplicitStateRootTimes),
			MetricBlockAdded:        calc.Compute(series.BlockAddedTimes),
		},
	}
	if label != "" {
		s.Label = &label
	}
	return s
}

// Render writes the plain text report to w.
func (s *Summary) Render(w io.Writer) {
	banner := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintln(w, "LOG ANALYSIS RESULTS")
	fmt.Fprintln(w, banner)
	for _, name := range metricOrder {
		s.renderMetric(w, name)
	}
	fmt.Fprintf(w, "\n%s\n", banner)
}

func (s *Summary) renderMetric(w io.Writer, name string) {
	stats := s.Metrics[name]
	if stats == nil {
		fmt.Fprintf(w, "\n%s: No data found\n", name)
		return
	}
	fmt.Fprintf(w, "\n%s:\n", name)
	fmt.Fprintf(w, "  Count:   %d\n", stats.Count)
	fmt.Fprintf(w, "  Mean:    %.3f ms\n", stats.Mean)
	fmt.Fprintf(w, "  Median:  %.3f ms\n", stats.Median)
	fmt.Fprintf(w, "  Min:     %.3f ms\n", stats.Min)
	fmt.Fprintf(w, "  Max:     %.3f ms\n", stats.Max)
	fmt.Fprintf(w, "  Std Dev: %.3f ms\n", stats.StdDev)
}

// WriteJSON serializes the summary to path, creating parent directories
// as needed.
func (s *Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
