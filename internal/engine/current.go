package engine

import (
	"time"

	"gameserver-stats/internal/constants"
	"gameserver-stats/internal/domain"
)

// DetectCurrent inspects the most recent session group of a polling cycle
// and decides whether it represents a live, unfinished match. A session is
// live when its newest snapshot falls inside the recency window relative to
// now. Unlike ResolveResult this never discards zero-duration or 0-0
// sessions; a match that just started legitimately looks like that.
func DetectCurrent(groups []SessionGroup, now time.Time) (*domain.CurrentSession, bool) {
	if len(groups) == 0 {
		return nil, false
	}
	group := groups[len(groups)-1]
	if len(group) == 0 {
		return nil, false
	}

	first := group[0]
	latest := group[len(group)-1]
	if now.Sub(latest.Timestamp) > constants.RecencyWindow {
		return nil, false
	}

	// Maximum round observed across the whole group, ignoring the sentinel
	// that marks a missing counter.
	currentRound := 0
	for _, record := range group {
		if record.Round != roundSentinel && record.Round > currentRound {
			currentRound = record.Round
		}
	}

	return &domain.CurrentSession{
		StartTime:           first.Timestamp,
		CurrentSnapshotTime: latest.Timestamp,
		Duration:            formatDuration(first.Timestamp, latest.Timestamp),
		Map:                 latest.Map,
		CurrentScore:        sumScores(latest.Scores),
		CurrentRound:        currentRound,
		Team1:               rosterNames(extractRoster(latest.Team1)),
		Team2:               rosterNames(extractRoster(latest.Team2)),
	}, true
}
