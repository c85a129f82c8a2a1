package engine

import (
	"fmt"
	"sort"
	"time"

	"gameserver-stats/internal/domain"
)

const zeroDuration = "00:00:00"

// ResolveResult reduces one session group into a finalized GameResult.
// Degenerate sessions, those with a zero duration or a 0-0 final score, are
// discarded and reported via the second return value.
func ResolveResult(group SessionGroup) (domain.GameResult, bool) {
	if len(group) == 0 {
		return domain.GameResult{}, false
	}

	// The segmenter emits ordered groups, but order is re-established here
	// rather than assumed.
	sorted := make(SessionGroup, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	first := sorted[0]
	final := sorted[len(sorted)-1]

	duration := formatDuration(first.Timestamp, final.Timestamp)
	score := sumScores(final.Scores)
	if duration == zeroDuration || (score.Team1 == 0 && score.Team2 == 0) {
		return domain.GameResult{}, false
	}

	team1 := extractRoster(final.Team1)
	team2 := extractRoster(final.Team2)

	winner := []string{}
	loser := []string{}
	switch {
	case score.Team1 > score.Team2:
		winner, loser = rosterNames(team1), rosterNames(team2)
	case score.Team2 > score.Team1:
		winner, loser = rosterNames(team2), rosterNames(team1)
	}

	return domain.GameResult{
		StartTime:  first.Timestamp,
		EndTime:    final.Timestamp,
		Duration:   duration,
		Map:        final.Map,
		FinalScore: score,
		Players:    domain.Rosters{Team1: team1, Team2: team2},
		Winner:     winner,
		Loser:      loser,
	}, true
}

// formatDuration renders the elapsed time between two snapshots as HH:MM:SS,
// truncated to whole seconds.
func formatDuration(start, end time.Time) string {
	seconds := int(end.Sub(start).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// sumScores totals every present score component. Absent components
// contribute nothing.
func sumScores(scores domain.ScoreComponents) domain.TeamScore {
	var total domain.TeamScore
	for _, component := range []*domain.TeamScore{scores.FirstHalf, scores.SecondHalf, scores.Overtime} {
		if component == nil {
			continue
		}
		total.Team1 += component.Team1
		total.Team2 += component.Team2
	}
	return total
}

// extractRoster flattens one raw roster, dropping empty or placeholder names
// and clamping kill/death counts to non-negative values. Output is sorted by
// name so results are deterministic regardless of map iteration order.
func extractRoster(entries map[string]domain.RosterEntry) []domain.PlayerScore {
	players := make([]domain.PlayerScore, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" || entry.Name == unknownName {
			continue
		}
		kills, deaths := entry.Kills, entry.Deaths
		if kills < 0 {
			kills = 0
		}
		if deaths < 0 {
			deaths = 0
		}
		players = append(players, domain.PlayerScore{Name: entry.Name, Kills: kills, Deaths: deaths})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players
}

func rosterNames(players []domain.PlayerScore) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}
