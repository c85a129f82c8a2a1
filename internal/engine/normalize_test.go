package engine_test

import (
	"testing"
	"time"

	"gameserver-stats/internal/engine"
	"gameserver-stats/internal/savestate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTree(t *testing.T, raw string) savestate.Tree {
	t.Helper()
	tree, err := savestate.Decode([]byte(raw))
	require.NoError(t, err)
	return tree
}

func TestNormalizeFullSnapshot(t *testing.T) {
	tree := decodeTree(t, `{
		"saveState": {
			"time": "2025-03-01 20:15:04",
			"round": 3,
			"map": "Stalingrad",
			"scores": {
				"firstHalf": {"team1": 2, "team2": 1},
				"overtime": {"team1": 1}
			},
			"team1": {"12": {"name": "Alice", "kills": 4, "deaths": 1}},
			"team2": {"7": {"name": "Bob", "kills": 1, "deaths": 4}}
		}
	}`)

	rec, err := engine.Normalize("snap-001.sav", tree)
	require.NoError(t, err)

	assert.Equal(t, "snap-001.sav", rec.SourceName)
	assert.Equal(t, time.Date(2025, 3, 1, 20, 15, 4, 0, time.UTC), rec.Timestamp)
	assert.Equal(t, 3, rec.Round)
	assert.Equal(t, "Stalingrad", rec.Map)

	require.NotNil(t, rec.Scores.FirstHalf)
	assert.Equal(t, 2, rec.Scores.FirstHalf.Team1)
	assert.Nil(t, rec.Scores.SecondHalf)
	require.NotNil(t, rec.Scores.Overtime)
	assert.Equal(t, 1, rec.Scores.Overtime.Team1)
	assert.Equal(t, 0, rec.Scores.Overtime.Team2)

	assert.Equal(t, "Alice", rec.Team1["12"].Name)
	assert.Equal(t, 4, rec.Team1["12"].Kills)
	assert.Equal(t, "Bob", rec.Team2["7"].Name)
}

func TestNormalizeDefaults(t *testing.T) {
	tree := decodeTree(t, `{"saveState": {"time": "2025-03-01 20:15:04"}}`)

	rec, err := engine.Normalize("snap.sav", tree)
	require.NoError(t, err)

	// A missing round must never look like a round-1 reset.
	assert.Greater(t, rec.Round, 1)
	assert.Equal(t, "Unknown", rec.Map)
	assert.Nil(t, rec.Scores.FirstHalf)
	assert.Empty(t, rec.Team1)
	assert.Empty(t, rec.Team2)
}

func TestNormalizeMissingSaveState(t *testing.T) {
	tree := decodeTree(t, `{"version": 2}`)

	_, err := engine.Normalize("snap.sav", tree)
	require.ErrorIs(t, err, engine.ErrMissingSaveState)
}

func TestNormalizeBadTimestamp(t *testing.T) {
	_, err := engine.Normalize("snap.sav", decodeTree(t, `{"saveState": {"round": 1}}`))
	require.ErrorIs(t, err, engine.ErrBadTimestamp)

	_, err = engine.Normalize("snap.sav", decodeTree(t, `{"saveState": {"time": "yesterday"}}`))
	require.ErrorIs(t, err, engine.ErrBadTimestamp)
}
