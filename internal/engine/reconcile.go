package engine

import "gameserver-stats/internal/domain"

// ReconcileHistory merges freshly resolved results into the persisted
// history, deduplicating by each result's natural (startTime, map) key.
// History stays append-only: existing entries are never rewritten, and a
// result observed in two overlapping polling cycles lands exactly once. The
// second return value is the number of results actually appended.
func ReconcileHistory(history, fresh []domain.GameResult) ([]domain.GameResult, int) {
	seen := make(map[string]struct{}, len(history))
	for _, result := range history {
		seen[result.Key()] = struct{}{}
	}

	merged := make([]domain.GameResult, len(history), len(history)+len(fresh))
	copy(merged, history)

	added := 0
	for _, result := range fresh {
		key := result.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, result)
		added++
	}
	return merged, added
}
