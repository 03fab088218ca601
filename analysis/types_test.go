package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockRangeContains(t *testing.T) {
	var unbounded *BlockRange
	require.True(t, unbounded.Contains(0))
	require.True(t, unbounded.Contains(12345))

	rng := &BlockRange{First: 10, Last: 12}
	require.False(t, rng.Contains(9))
	require.True(t, rng.Contains(10))
	require.True(t, rng.Contains(11))
	require.True(t, rng.Contains(12))
	require.False(t, rng.Contains(13))

	inverted := &BlockRange{First: 11, Last: 9}
	require.False(t, inverted.Contains(9))
	require.False(t, inverted.Contains(10))
	require.False(t, inverted.Contains(11))
}

func TestBlockRangeBlocks(t *testing.T) {
	require.Equal(t, uint64(3), (&BlockRange{First: 10, Last: 12}).Blocks())
	require.Equal(t, uint64(1), (&BlockRange{First: 10, Last: 10}).Blocks())
	require.Equal(t, uint64(0), (&BlockRange{First: 1, Last: 0}).Blocks())
}

func TestBlockRangeJSON(t *testing.T) {
	data, err := json.Marshal(&BlockRange{First: 10, Last: 12})
	require.NoError(t, err)
	require.JSONEq(t, "[10, 12]", string(data))

	var rng BlockRange
	require.NoError(t, json.Unmarshal([]byte("[4, 7]"), &rng))
	require.Equal(t, BlockRange{First: 4, Last: 7}, rng)

	require.Error(t, json.Unmarshal([]byte(`{"first": 4}`), &rng))
}
