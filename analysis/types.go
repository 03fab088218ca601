// Package analysis drives the two passes over a node debug log: block
// range detection and latency series extraction.
package analysis

import "encoding/json"

// BlockRange is an inclusive range of block numbers. A nil *BlockRange
// means no steady-state range was detected and no filtering applies.
type BlockRange struct {
	First uint64
	Last  uint64
}

// Contains reports whether block n falls inside the range. A nil range
// contains every block, an inverted range contains none.
func (r *BlockRange) Contains(n uint64) bool {
	if r == nil {
		return true
	}
	return n >= r.First && n <= r.Last
}

// Blocks returns the number of blocks covered by the range.
func (r *BlockRange) Blocks() uint64 {
	return r.Last - r.First + 1
}

// MarshalJSON encodes the range as a two-element [first, last] array.
func (r BlockRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint64{r.First, r.Last})
}

// UnmarshalJSON decodes the [first, last] array form.
func (r *BlockRange) UnmarshalJSON(data []byte) error {
	var bounds [2]uint64
	if err := json.Unmarshal(data, &bounds); err != nil {
		return err
	}
	r.First, r.Last = bounds[0], bounds[1]
	return nil
}

// Series holds the extracted latency series, all in milliseconds.
type Series struct {
	// BuildTimes are the elapsed values of Built payload events.
	BuildTimes []float64
	// StateRootTimes are the deltas between a Built payload event and the
	// matching Received block event, a proxy for state root computation.
	StateRootTimes []float64
	// ExplicitStateRootTimes are the elapsed values of State root task
	// events, present only in some logs.
	ExplicitStateRootTimes []float64
	// BlockAddedTimes are the elapsed values of Block added events.
	BlockAddedTimes []float64
}
