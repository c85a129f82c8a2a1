package engine

import (
	"math"
	"sort"

	"gameserver-stats/internal/domain"
)

// BuildLeaderboard recomputes per-player cumulative statistics from the full
// history. Wins are only credited for games with a strict score decision.
// Entries sort by K/D descending with name ascending as the tiebreak.
func BuildLeaderboard(history []domain.GameResult) []domain.LeaderboardEntry {
	stats := make(map[string]*domain.LeaderboardEntry)

	ensure := func(name string) *domain.LeaderboardEntry {
		entry, ok := stats[name]
		if !ok {
			entry = &domain.LeaderboardEntry{Name: name}
			stats[name] = entry
		}
		return entry
	}

	for _, game := range history {
		team1Won := game.FinalScore.Team1 > game.FinalScore.Team2
		team2Won := game.FinalScore.Team2 > game.FinalScore.Team1

		// A player counts as having played once per game, even if a roster
		// anomaly lists them on both teams.
		playedThisGame := make(map[string]struct{})

		accumulate := func(players []domain.PlayerScore, won bool) {
			for _, player := range players {
				entry := ensure(player.Name)
				entry.TotalKills += player.Kills
				entry.TotalDeaths += player.Deaths
				if _, counted := playedThisGame[player.Name]; !counted {
					playedThisGame[player.Name] = struct{}{}
					entry.MatchesPlayed++
				}
				if won {
					entry.Wins++
				}
			}
		}
		accumulate(game.Players.Team1, team1Won)
		accumulate(game.Players.Team2, team2Won)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(stats))
	for _, entry := range stats {
		entry.KD = kdRatio(entry.TotalKills, entry.TotalDeaths)
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].KD != entries[j].KD {
			return entries[i].KD > entries[j].KD
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// kdRatio is kills/deaths rounded to two decimals; with zero deaths it is
// the kill count itself.
func kdRatio(kills, deaths int) float64 {
	if deaths == 0 {
		return float64(kills)
	}
	return math.Round(float64(kills)/float64(deaths)*100) / 100
}
