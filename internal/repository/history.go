package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gameserver-stats/internal/constants"
	"gameserver-stats/internal/domain"

	"github.com/rs/zerolog"
)

type HistoryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewHistoryRepository(sqlDB *sql.DB, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{db: sqlDB, logger: logger}
}

// Load returns the full persisted history in start-time order. An empty
// table is an empty history, not an error.
func (r *HistoryRepository) Load(ctx context.Context) ([]domain.GameResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT start_time, end_time, duration, map, team1_score, team2_score, players, winner, loser
		FROM game_results
		ORDER BY start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var history []domain.GameResult
	for rows.Next() {
		var (
			result                 domain.GameResult
			players, winner, loser []byte
		)
		if err := rows.Scan(
			&result.StartTime,
			&result.EndTime,
			&result.Duration,
			&result.Map,
			&result.FinalScore.Team1,
			&result.FinalScore.Team2,
			&players,
			&winner,
			&loser,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		if err := json.Unmarshal(players, &result.Players); err != nil {
			return nil, fmt.Errorf("failed to decode players for %s: %w", result.Key(), err)
		}
		if err := json.Unmarshal(winner, &result.Winner); err != nil {
			return nil, fmt.Errorf("failed to decode winner for %s: %w", result.Key(), err)
		}
		if err := json.Unmarshal(loser, &result.Loser); err != nil {
			return nil, fmt.Errorf("failed to decode loser for %s: %w", result.Key(), err)
		}
		history = append(history, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	r.logger.Debug().Int("count", len(history)).Msg("history loaded")
	return history, nil
}

// Save replaces the persisted history wholesale inside one transaction, so
// readers of the table never observe a partial rewrite.
func (r *HistoryRepository) Save(ctx context.Context, history []domain.GameResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_results`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	now := time.Now()
	for i := 0; i < len(history); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(history) {
			end = len(history)
		}

		for _, result := range history[i:end] {
			players, err := json.Marshal(result.Players)
			if err != nil {
				return fmt.Errorf("failed to encode players for %s: %w", result.Key(), err)
			}
			winner, err := json.Marshal(result.Winner)
			if err != nil {
				return fmt.Errorf("failed to encode winner for %s: %w", result.Key(), err)
			}
			loser, err := json.Marshal(result.Loser)
			if err != nil {
				return fmt.Errorf("failed to encode loser for %s: %w", result.Key(), err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO game_results
					(start_time, end_time, duration, map, team1_score, team2_score, players, winner, loser, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				result.StartTime,
				result.EndTime,
				result.Duration,
				result.Map,
				result.FinalScore.Team1,
				result.FinalScore.Team2,
				players,
				winner,
				loser,
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to insert game result %s: %w", result.Key(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}

	r.logger.Debug().Int("count", len(history)).Msg("history saved")
	return nil
}
