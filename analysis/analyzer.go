package analysis

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skylenet/blockstat/event"
	"github.com/skylenet/blockstat/logline"
)

// scanBufferSize is the initial line buffer handed to bufio.Scanner.
const scanBufferSize = 64 * 1024

// Config contains configuration for the analyzer.
type Config struct {
	// MinGas is the gas threshold a block must exceed to count as
	// non-empty during range detection.
	MinGas float64
	// MaxLineSize caps the length of a single log line in bytes.
	MaxLineSize int
}

// DefaultConfig returns sensible defaults for the analyzer.
func DefaultConfig() Config {
	return Config{
		MinGas:      1000,
		MaxLineSize: 1024 * 1024,
	}
}

// Analyzer extracts block production latency series from a debug log.
type Analyzer interface {
	// DetectRange finds the steady-state block range.
	DetectRange(path string) (*BlockRange, error)
	// Extract collects the latency series, filtered to rng where events
	// carry a block number.
	Extract(path string, rng *BlockRange) (*Series, error)
}

// analyzer implements Analyzer.
type analyzer struct {
	log    logrus.FieldLogger
	config Config
}

// NewAnalyzer creates a new log analyzer.
func NewAnalyzer(log logrus.FieldLogger, config Config) Analyzer {
	return &analyzer{
		log:    log.WithField("component", "analyzer"),
		config: config,
	}
}

// DetectRange scans the log for Block added events and derives the
// steady-state range from the blocks that burned more than the non-empty
// gas threshold. With three or more non-empty blocks the first and last
// are dropped as ramp-up/ramp-down, with fewer the range covers them all.
// It returns nil when no block qualifies.
func (a *analyzer) DetectRange(path string) (*BlockRange, error) {
	var nonEmpty []uint64
	err := a.scanFile(path, func(clean string) {
		if !strings.Contains(clean, event.MarkerBlockAdded) {
			return
		}
		number := event.Number(clean)
		gasUsed := event.GasUsed(clean)
		if number == nil || gasUsed == nil {
			return
		}
		if *gasUsed > a.config.MinGas {
			nonEmpty = append(nonEmpty, *number)
		}
	})
	if err != nil {
		return nil, err
	}

	if len(nonEmpty) == 0 {
		a.log.Debug("No non-empty blocks detected")
		return nil, nil
	}

	first, last := nonEmpty[0], nonEmpty[len(nonEmpty)-1]
	if len(nonEmpty) >= 3 {
		first++
		if last > 0 { // saturate, a trimmed range below block 1 stays empty
			last--
		}
	}

	a.log.WithFields(logrus.Fields{
		"first":     first,
		"last":      last,
		"non_empty": len(nonEmpty),
	}).Debug("Detected steady-state block range")
	return &BlockRange{First: first, Last: last}, nil
}

// Extract runs the extraction pass over the log. Build and block-added
// times only count inside rng, state root task events carry no block
// number and are never filtered. Block 1 directly follows genesis and is
// skipped entirely.
func (a *analyzer) Extract(path string, rng *BlockRange) (*Series, error) {
	series := &Series{}

	// Built payload timestamps by block number, consumed by the matching
	// Received block event.
	pending := make(map[uint64]time.Time)

	err := a.scanFile(path, func(clean string) {
		ev, ok := event.Parse(clean)
		if !ok {
			return
		}
		ts, hasTS := logline.Timestamp(clean)

		switch ev.Kind {
		case event.KindBuiltPayload:
			if ev.ParentNumber == nil {
				return
			}
			block := *ev.ParentNumber + 1
			if block == 1 {
				return
			}
			if hasTS {
				pending[block] = ts
			}
			if ev.ElapsedMS != nil && rng.Contains(block) {
				series.BuildTimes = append(series.BuildTimes, *ev.ElapsedMS)
			}

		case event.KindReceivedBlock:
			if ev.Number == nil || !hasTS {
				return
			}
			block := *ev.Number
			if block == 1 {
				return
			}
			start, waiting := pending[block]
			if !waiting || !rng.Contains(block) {
				return
			}
			delta := float64(ts.Sub(start)) / float64(time.Millisecond)
			series.StateRootTimes = append(series.StateRootTimes, delta)
			delete(pending, block)

		case event.KindStateRootTask:
			if ev.ElapsedMS != nil {
				series.ExplicitStateRootTimes = append(series.ExplicitStateRootTimes, *ev.ElapsedMS)
			}

		case event.KindBlockAdded:
			if ev.Number == nil || ev.ElapsedMS == nil {
				return
			}
			if rng.Contains(*ev.Number) {
				series.BlockAddedTimes = append(series.BlockAddedTimes, *ev.ElapsedMS)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"build":               len(series.BuildTimes),
		"state_root":          len(series.StateRootTimes),
		"explicit_state_root": len(series.ExplicitStateRootTimes),
		"block_added":         len(series.BlockAddedTimes),
		"unmatched_payloads":  len(pending),
	}).Debug("Extraction pass complete")
	return series, nil
}

// scanFile streams path line by line through fn. Lines are handed to fn
// already ANSI-stripped and the file is never held in memory whole.
func (a *analyzer) scanFile(path string, fn func(clean string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanBufferSize), a.config.MaxLineSize)
	for scanner.Scan() {
		fn(logline.StripANSI(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	return nil
}

// Verify interface compliance.
var _ Analyzer = (*analyzer)(nil)
