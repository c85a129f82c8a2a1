package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gameserver-stats/internal/constants"
	"gameserver-stats/internal/domain"

	"github.com/rs/zerolog"
)

type LeaderboardRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLeaderboardRepository(sqlDB *sql.DB, logger zerolog.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{db: sqlDB, logger: logger}
}

// Load returns the persisted leaderboard in rank order.
func (r *LeaderboardRepository) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, matches_played, wins, total_kills, total_deaths, kd
		FROM leaderboard_entries
		ORDER BY rank ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(
			&entry.Name,
			&entry.MatchesPlayed,
			&entry.Wins,
			&entry.TotalKills,
			&entry.TotalDeaths,
			&entry.KD,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	r.logger.Debug().Int("count", len(entries)).Msg("leaderboard loaded")
	return entries, nil
}

// Save replaces the persisted leaderboard wholesale. Rank follows the slice
// order the aggregator produced.
func (r *LeaderboardRepository) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}

	now := time.Now()
	for i := 0; i < len(entries); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		for offset, entry := range entries[i:end] {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO leaderboard_entries
					(name, matches_played, wins, total_kills, total_deaths, kd, rank, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				entry.Name,
				entry.MatchesPlayed,
				entry.Wins,
				entry.TotalKills,
				entry.TotalDeaths,
				entry.KD,
				i+offset+1,
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to insert leaderboard entry %s: %w", entry.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit leaderboard: %w", err)
	}

	r.logger.Debug().Int("count", len(entries)).Msg("leaderboard saved")
	return nil
}
