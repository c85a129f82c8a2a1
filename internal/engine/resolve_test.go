package engine_test

import (
	"testing"
	"time"

	"gameserver-stats/internal/domain"
	"gameserver-stats/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(team1, team2 int) *domain.TeamScore {
	return &domain.TeamScore{Team1: team1, Team2: team2}
}

func playedRecord(offset time.Duration, round int, mapName string, scores domain.ScoreComponents, team1, team2 map[string]domain.RosterEntry) domain.SnapshotRecord {
	rec := record(offset, round, mapName)
	rec.Scores = scores
	rec.Team1 = team1
	rec.Team2 = team2
	return rec
}

func TestResolveResultEmptyGroup(t *testing.T) {
	_, ok := engine.ResolveResult(engine.SessionGroup{})
	require.False(t, ok)
}

func TestResolveResultBasicGame(t *testing.T) {
	team1 := map[string]domain.RosterEntry{
		"0": {Name: "Alice", Kills: 4, Deaths: 0},
		"1": {Name: "Bob", Kills: 2, Deaths: 3},
	}
	team2 := map[string]domain.RosterEntry{
		"0": {Name: "Carol", Kills: 1, Deaths: 5},
	}
	group := engine.SessionGroup{
		record(0, 1, "Stalingrad"),
		record(5*time.Minute, 2, "Stalingrad"),
		playedRecord(12*time.Minute+34*time.Second, 3, "Stalingrad",
			domain.ScoreComponents{FirstHalf: score(2, 1)}, team1, team2),
	}

	result, ok := engine.ResolveResult(group)
	require.True(t, ok)

	assert.Equal(t, baseTime, result.StartTime)
	assert.Equal(t, baseTime.Add(12*time.Minute+34*time.Second), result.EndTime)
	assert.Equal(t, "00:12:34", result.Duration)
	assert.Equal(t, "Stalingrad", result.Map)
	assert.Equal(t, domain.TeamScore{Team1: 2, Team2: 1}, result.FinalScore)
	assert.Equal(t, []string{"Alice", "Bob"}, result.Winner)
	assert.Equal(t, []string{"Carol"}, result.Loser)
}

func TestResolveResultSumsAllScoreComponents(t *testing.T) {
	group := engine.SessionGroup{
		record(0, 1, "Remagen"),
		playedRecord(time.Hour+time.Minute+2*time.Second, 9, "Remagen",
			domain.ScoreComponents{
				FirstHalf:  score(2, 1),
				SecondHalf: score(1, 2),
				Overtime:   score(1, 0),
			},
			map[string]domain.RosterEntry{"0": {Name: "Alice"}},
			map[string]domain.RosterEntry{"0": {Name: "Bob"}}),
	}

	result, ok := engine.ResolveResult(group)
	require.True(t, ok)
	assert.Equal(t, "01:01:02", result.Duration)
	assert.Equal(t, domain.TeamScore{Team1: 4, Team2: 3}, result.FinalScore)
}

func TestResolveResultDiscardsZeroDuration(t *testing.T) {
	group := engine.SessionGroup{
		playedRecord(0, 1, "Stalingrad",
			domain.ScoreComponents{FirstHalf: score(2, 1)},
			map[string]domain.RosterEntry{"0": {Name: "Alice"}},
			map[string]domain.RosterEntry{"0": {Name: "Bob"}}),
	}
	_, ok := engine.ResolveResult(group)
	require.False(t, ok)
}

func TestResolveResultDiscardsZeroScore(t *testing.T) {
	group := engine.SessionGroup{
		record(0, 1, "Stalingrad"),
		playedRecord(10*time.Minute, 2, "Stalingrad",
			domain.ScoreComponents{FirstHalf: score(0, 0)},
			map[string]domain.RosterEntry{"0": {Name: "Alice"}},
			map[string]domain.RosterEntry{"0": {Name: "Bob"}}),
	}
	_, ok := engine.ResolveResult(group)
	require.False(t, ok)
}

func TestResolveResultTieYieldsEmptyWinnerAndLoser(t *testing.T) {
	group := engine.SessionGroup{
		record(0, 1, "Stalingrad"),
		playedRecord(20*time.Minute, 6, "Stalingrad",
			domain.ScoreComponents{FirstHalf: score(3, 3)},
			map[string]domain.RosterEntry{"0": {Name: "Alice"}},
			map[string]domain.RosterEntry{"0": {Name: "Bob"}}),
	}

	result, ok := engine.ResolveResult(group)
	require.True(t, ok)
	require.NotNil(t, result.Winner)
	require.NotNil(t, result.Loser)
	assert.Empty(t, result.Winner)
	assert.Empty(t, result.Loser)
}

func TestResolveResultFiltersPlaceholderNames(t *testing.T) {
	group := engine.SessionGroup{
		record(0, 1, "Stalingrad"),
		playedRecord(10*time.Minute, 2, "Stalingrad",
			domain.ScoreComponents{FirstHalf: score(1, 0)},
			map[string]domain.RosterEntry{
				"0": {Name: "Alice", Kills: 3, Deaths: 1},
				"1": {Name: ""},
				"2": {Name: "Unknown"},
			},
			map[string]domain.RosterEntry{
				"0": {Name: "Bob", Kills: -2, Deaths: -1},
			}),
	}

	result, ok := engine.ResolveResult(group)
	require.True(t, ok)
	require.Len(t, result.Players.Team1, 1)
	assert.Equal(t, "Alice", result.Players.Team1[0].Name)
	require.Len(t, result.Players.Team2, 1)
	assert.Equal(t, domain.PlayerScore{Name: "Bob", Kills: 0, Deaths: 0}, result.Players.Team2[0])
}

func TestResolveResultUsesFinalSnapshotOnly(t *testing.T) {
	// Earlier snapshots carry different rosters and scores; only the last
	// one counts.
	group := engine.SessionGroup{
		playedRecord(0, 1, "Stalingrad",
			domain.ScoreComponents{FirstHalf: score(9, 9)},
			map[string]domain.RosterEntry{"0": {Name: "Ghost", Kills: 99}},
			map[string]domain.RosterEntry{}),
		playedRecord(15*time.Minute, 4, "Stalingrad",
			domain.ScoreComponents{FirstHalf: score(2, 0)},
			map[string]domain.RosterEntry{"0": {Name: "Alice", Kills: 5, Deaths: 2}},
			map[string]domain.RosterEntry{"0": {Name: "Bob", Kills: 2, Deaths: 5}}),
	}

	result, ok := engine.ResolveResult(group)
	require.True(t, ok)
	assert.Equal(t, domain.TeamScore{Team1: 2, Team2: 0}, result.FinalScore)
	require.Len(t, result.Players.Team1, 1)
	assert.Equal(t, "Alice", result.Players.Team1[0].Name)
}
