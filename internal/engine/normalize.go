// Package engine implements the game session aggregation core: turning raw
// save-state trees into snapshot records, grouping them into sessions,
// resolving finished games, detecting a live game, and rolling results up
// into a leaderboard. Everything here is pure computation; retrieval,
// decoding and persistence live elsewhere.
package engine

import (
	"fmt"
	"time"

	"gameserver-stats/internal/domain"
	"gameserver-stats/internal/savestate"
)

const (
	// timeLayout is the fixed date-time format the game server writes into
	// every save state.
	timeLayout = "2006-01-02 15:04:05"

	// roundSentinel stands in for a missing round counter. Anything this
	// large is never mistaken for a round-1 reset.
	roundSentinel = 9999

	unknownName = "Unknown"
)

var (
	ErrMissingSaveState = fmt.Errorf("artifact has no saveState section")
	ErrBadTimestamp     = fmt.Errorf("artifact has no parseable timestamp")
)

// Normalize converts one decoded artifact tree into a SnapshotRecord. Trees
// without a saveState section or a parseable time field are unusable and
// reported via ErrMissingSaveState / ErrBadTimestamp so the caller can skip
// them without failing the batch.
func Normalize(sourceName string, tree savestate.Tree) (domain.SnapshotRecord, error) {
	state, ok := tree.Section("saveState")
	if !ok {
		return domain.SnapshotRecord{}, ErrMissingSaveState
	}

	raw, ok := state.String("time")
	if !ok {
		return domain.SnapshotRecord{}, ErrBadTimestamp
	}
	timestamp, err := time.Parse(timeLayout, raw)
	if err != nil {
		return domain.SnapshotRecord{}, fmt.Errorf("%w: %q", ErrBadTimestamp, raw)
	}

	round, ok := state.Int("round")
	if !ok {
		round = roundSentinel
	}

	mapName, ok := state.String("map")
	if !ok {
		mapName = unknownName
	}

	return domain.SnapshotRecord{
		SourceName: sourceName,
		Timestamp:  timestamp,
		Round:      round,
		Map:        mapName,
		Scores: domain.ScoreComponents{
			FirstHalf:  scoreComponent(state, "firstHalf"),
			SecondHalf: scoreComponent(state, "secondHalf"),
			Overtime:   scoreComponent(state, "overtime"),
		},
		Team1: roster(state, "team1"),
		Team2: roster(state, "team2"),
	}, nil
}

// scoreComponent reads one optional score pair. Missing numeric subfields
// count as zero; a missing component stays nil.
func scoreComponent(state savestate.Tree, key string) *domain.TeamScore {
	scores, ok := state.Section("scores")
	if !ok {
		return nil
	}
	component, ok := scores.Section(key)
	if !ok {
		return nil
	}
	team1, _ := component.Int("team1")
	team2, _ := component.Int("team2")
	return &domain.TeamScore{Team1: team1, Team2: team2}
}

func roster(state savestate.Tree, key string) map[string]domain.RosterEntry {
	section, ok := state.Section(key)
	if !ok {
		return map[string]domain.RosterEntry{}
	}

	entries := make(map[string]domain.RosterEntry, len(section))
	for id := range section {
		player, ok := section.Section(id)
		if !ok {
			continue
		}
		name, _ := player.String("name")
		kills, _ := player.Int("kills")
		deaths, _ := player.Int("deaths")
		entries[id] = domain.RosterEntry{Name: name, Kills: kills, Deaths: deaths}
	}
	return entries
}
