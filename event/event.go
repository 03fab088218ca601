// Package event classifies normalized debug-log lines into the block
// production events the analyzer tracks and extracts their fields.
package event

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/skylenet/blockstat/logline"
)

// Marker substrings identifying each event in the node's debug output.
const (
	MarkerBuiltPayload  = "Built payload"
	MarkerReceivedBlock = "Received block from consensus engine"
	MarkerStateRootTask = "State root task finished"
	MarkerBlockAdded    = "Block added to canonical chain"
)

// Kind identifies a recognized block production event.
type Kind int

const (
	KindNone Kind = iota
	KindBuiltPayload
	KindReceivedBlock
	KindStateRootTask
	KindBlockAdded
)

var (
	parentNumberPattern = regexp.MustCompile(`parent_number\s*=\s*(\d+)`)
	numberPattern       = regexp.MustCompile(`number\s*=\s*(\d+)`)
	elapsedPattern      = regexp.MustCompile(`elapsed\s*=\s*([\d.]+(?:ms|µs|s))`)
	gasUsedPattern      = regexp.MustCompile(`gas_used\s*=\s*([\d.]+)([KMG]?)gas`)
)

// Event is a single recognized log line. Field pointers are nil when the
// line does not carry the field or its value fails to parse.
type Event struct {
	Kind         Kind
	ParentNumber *uint64  // Built payload
	Number       *uint64  // Received block, Block added
	GasUsed      *float64 // Block added, in base gas units
	ElapsedMS    *float64 // Built payload, State root task, Block added
}

// Parse classifies a cleaned log line. The four markers are tested in
// order and the first match wins, so a line contributes to at most one
// event kind. Lines without a marker report false.
func Parse(clean string) (Event, bool) {
	switch {
	case strings.Contains(clean, MarkerBuiltPayload):
		return Event{
			Kind:         KindBuiltPayload,
			ParentNumber: ParentNumber(clean),
			ElapsedMS:    ElapsedMS(clean),
		}, true
	case strings.Contains(clean, MarkerReceivedBlock):
		return Event{
			Kind:   KindReceivedBlock,
			Number: Number(clean),
		}, true
	case strings.Contains(clean, MarkerStateRootTask):
		return Event{
			Kind:      KindStateRootTask,
			ElapsedMS: ElapsedMS(clean),
		}, true
	case strings.Contains(clean, MarkerBlockAdded):
		return Event{
			Kind:      KindBlockAdded,
			Number:    Number(clean),
			GasUsed:   GasUsed(clean),
			ElapsedMS: ElapsedMS(clean),
		}, true
	}
	return Event{}, false
}

// ParentNumber extracts the parent_number field.
func ParentNumber(clean string) *uint64 {
	return matchUint(parentNumberPattern, clean)
}

// Number extracts the leftmost number field. On lines that also carry a
// parent_number field the leftmost match sits inside it, so callers only
// use this on lines where number comes first.
func Number(clean string) *uint64 {
	return matchUint(numberPattern, clean)
}

// ElapsedMS extracts the elapsed duration field in milliseconds.
func ElapsedMS(clean string) *float64 {
	m := elapsedPattern.FindStringSubmatch(clean)
	if m == nil {
		return nil
	}
	v, ok := logline.DurationMS(m[1])
	if !ok {
		return nil
	}
	return &v
}

// GasUsed extracts the gas_used field and applies the K/M/G suffix
// multiplier, returning base gas units.
func GasUsed(clean string) *float64 {
	m := gasUsedPattern.FindStringSubmatch(clean)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	switch m[2] {
	case "K":
		v *= 1e3
	case "M":
		v *= 1e6
	case "G":
		v *= 1e9
	}
	return &v
}

func matchUint(pattern *regexp.Regexp, clean string) *uint64 {
	m := pattern.FindStringSubmatch(clean)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
