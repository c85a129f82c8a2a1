package savestate_test

import (
	"testing"

	"gameserver-stats/internal/savestate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tree, err := savestate.Decode([]byte(`{"saveState": {"round": 2, "map": "Remagen"}}`))
	require.NoError(t, err)

	state, ok := tree.Section("saveState")
	require.True(t, ok)

	round, ok := state.Int("round")
	require.True(t, ok)
	assert.Equal(t, 2, round)

	mapName, ok := state.String("map")
	require.True(t, ok)
	assert.Equal(t, "Remagen", mapName)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := savestate.Decode([]byte(`not json`))
	require.Error(t, err)
}

func TestTreeMissingAndMistyped(t *testing.T) {
	tree, err := savestate.Decode([]byte(`{"round": "2", "map": 7, "scores": []}`))
	require.NoError(t, err)

	_, ok := tree.Int("round")
	assert.False(t, ok)
	_, ok = tree.String("map")
	assert.False(t, ok)
	_, ok = tree.Section("scores")
	assert.False(t, ok)
	_, ok = tree.Section("absent")
	assert.False(t, ok)
}
