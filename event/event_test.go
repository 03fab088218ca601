package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBuiltPayload(t *testing.T) {
	line := "2025-09-29T22:22:37.272569Z  INFO payload_builder: Built payload parent_hash=0xaa parent_number=9672 txs=148 elapsed=18.378125ms"
	ev, ok := Parse(line)
	require.True(t, ok)
	require.Equal(t, KindBuiltPayload, ev.Kind)
	require.NotNil(t, ev.ParentNumber)
	require.Equal(t, uint64(9672), *ev.ParentNumber)
	require.NotNil(t, ev.ElapsedMS)
	require.Equal(t, 18.378125, *ev.ElapsedMS)
	require.Nil(t, ev.Number)
	require.Nil(t, ev.GasUsed)
}

func TestParseReceivedBlock(t *testing.T) {
	line := "2025-09-29T22:22:37.389421Z  INFO consensus::engine: Received block from consensus engine number=9673 hash=0xbb"
	ev, ok := Parse(line)
	require.True(t, ok)
	require.Equal(t, KindReceivedBlock, ev.Kind)
	require.NotNil(t, ev.Number)
	require.Equal(t, uint64(9673), *ev.Number)
	require.Nil(t, ev.ElapsedMS)
}

func TestParseStateRootTask(t *testing.T) {
	line := "2025-09-29T22:22:37.410112Z  INFO engine::root: State root task finished elapsed=750µs state_root=0xcc"
	ev, ok := Parse(line)
	require.True(t, ok)
	require.Equal(t, KindStateRootTask, ev.Kind)
	require.NotNil(t, ev.ElapsedMS)
	require.Equal(t, 0.75, *ev.ElapsedMS)
	require.Nil(t, ev.Number)
}

func TestParseBlockAdded(t *testing.T) {
	line := "2025-09-29T22:22:37.450990Z  INFO engine::tree: Block added to canonical chain number=9673 hash=0xdd txs=148 gas_used=30Mgas elapsed=3.242ms"
	ev, ok := Parse(line)
	require.True(t, ok)
	require.Equal(t, KindBlockAdded, ev.Kind)
	require.NotNil(t, ev.Number)
	require.Equal(t, uint64(9673), *ev.Number)
	require.NotNil(t, ev.GasUsed)
	require.Equal(t, 3e7, *ev.GasUsed)
	require.NotNil(t, ev.ElapsedMS)
	require.Equal(t, 3.242, *ev.ElapsedMS)
}

func TestParseUnrecognized(t *testing.T) {
	tests := []string{
		"2025-09-29T22:22:37.272569Z  INFO engine: Forkchoice updated head=0xaa",
		"plain text without any marker",
		"",
	}
	for _, line := range tests {
		ev, ok := Parse(line)
		require.False(t, ok)
		require.Equal(t, KindNone, ev.Kind)
	}
}

func TestParseFirstMarkerWins(t *testing.T) {
	// a line mentioning two markers contributes to the first kind only
	line := "INFO replay: Built payload before Block added to canonical chain parent_number=11 number=12 elapsed=5ms"
	ev, ok := Parse(line)
	require.True(t, ok)
	require.Equal(t, KindBuiltPayload, ev.Kind)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		line string
		want uint64
		ok   bool
	}{
		{"plain", "number=42", 42, true},
		{"spaces around equals", "number = 42", 42, true},
		{"leftmost match", "number=7 number=8", 7, true},
		{"inside parent_number", "parent_number=7", 7, true},
		{"missing", "hash=0xaa", 0, false},
		{"overflow", "number=99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.line)
			if !tt.ok {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.want, *got)
		})
	}
}

func TestParentNumber(t *testing.T) {
	got := ParentNumber("Built payload parent_number=9672 txs=10")
	require.NotNil(t, got)
	require.Equal(t, uint64(9672), *got)

	require.Nil(t, ParentNumber("Built payload number=9672"))
}

func TestElapsedMS(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
		ok   bool
	}{
		{"milliseconds", "elapsed=3.242ms", 3.242, true},
		{"microseconds", "elapsed=750µs", 0.75, true},
		{"seconds", "elapsed=1.5s", 1500, true},
		{"spaces around equals", "elapsed = 2ms", 2, true},
		{"missing", "duration=3ms", 0, false},
		{"bad value", "elapsed=1.2.3ms", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ElapsedMS(tt.line)
			if !tt.ok {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.want, *got)
		})
	}
}

func TestGasUsed(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
		ok   bool
	}{
		{"base units", "gas_used=500gas", 500, true},
		{"kilo", "gas_used=1.001Kgas", 1001, true},
		{"mega", "gas_used=30Mgas", 3e7, true},
		{"giga", "gas_used=2Ggas", 2e9, true},
		{"spaces around equals", "gas_used = 750gas", 750, true},
		{"missing", "gas=500gas", 0, false},
		{"bad value", "gas_used=..Kgas", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GasUsed(tt.line)
			if !tt.ok {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}
