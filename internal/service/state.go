package service

import (
	"sync"
	"time"

	"gameserver-stats/internal/domain"
	"gameserver-stats/internal/engine"
)

// Snapshot is the immutable outcome of one successful aggregation cycle.
// Readers always get a complete snapshot, never a half-updated one.
type Snapshot struct {
	History     []domain.GameResult
	Leaderboard []domain.LeaderboardEntry
	Current     *domain.CurrentSession
	Report      *engine.CycleReport
	UpdatedAt   time.Time
}

// State owns the process-wide history and leaderboard. It is only ever
// replaced wholesale after a cycle completes; failed cycles leave the prior
// snapshot untouched.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewState() *State {
	return &State{}
}

func (s *State) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *State) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}
