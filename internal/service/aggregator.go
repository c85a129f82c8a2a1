package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gameserver-stats/internal/constants"
	"gameserver-stats/internal/domain"
	"gameserver-stats/internal/engine"
	"gameserver-stats/internal/savestate"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrRetrieval marks a cycle that failed because the remote source was
	// unreachable or timed out. Prior state stays authoritative.
	ErrRetrieval = errors.New("remote retrieval failed")

	// ErrPersistence marks a cycle whose computed state could not be written
	// back. The computed state is discarded.
	ErrPersistence = errors.New("failed to persist cycle state")
)

// Source is the remote artifact retrieval capability.
type Source interface {
	ListArtifacts(ctx context.Context) ([]string, error)
	FetchArtifact(ctx context.Context, name string) ([]byte, error)
}

// HistoryStore persists the full game-result history.
type HistoryStore interface {
	Load(ctx context.Context) ([]domain.GameResult, error)
	Save(ctx context.Context, history []domain.GameResult) error
}

// LeaderboardStore persists the computed leaderboard.
type LeaderboardStore interface {
	Load(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Save(ctx context.Context, entries []domain.LeaderboardEntry) error
}

// Aggregator runs the snapshot aggregation pipeline: list and fetch
// artifacts, decode and normalize them, segment into sessions, resolve
// finished games, reconcile against persisted history and rebuild the
// leaderboard. Concurrent triggers collapse into a single in-flight cycle.
type Aggregator struct {
	source          Source
	historyRepo     HistoryStore
	leaderboardRepo LeaderboardStore
	state           *State
	logger          zerolog.Logger
	flight          singleflight.Group
	now             func() time.Time
}

func NewAggregator(
	source Source,
	historyRepo HistoryStore,
	leaderboardRepo LeaderboardStore,
	state *State,
	logger zerolog.Logger,
) *Aggregator {
	return &Aggregator{
		source:          source,
		historyRepo:     historyRepo,
		leaderboardRepo: leaderboardRepo,
		state:           state,
		logger:          logger,
		now:             time.Now,
	}
}

// Bootstrap seeds the in-memory state from persistence so read endpoints
// serve data before the first cycle completes.
func (a *Aggregator) Bootstrap(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	history, err := a.historyRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	leaderboard, err := a.leaderboardRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	a.state.Replace(Snapshot{
		History:     history,
		Leaderboard: leaderboard,
		UpdatedAt:   a.now(),
	})

	a.logger.Info().
		Int("games", len(history)).
		Int("players", len(leaderboard)).
		Msg("state bootstrapped from persistence")
	return nil
}

// Current returns the state of the last successfully completed cycle. It
// never blocks on an in-flight cycle.
func (a *Aggregator) Current() Snapshot {
	return a.state.Get()
}

// RunCycle executes one aggregation cycle. Overlapping callers share a
// single execution: two concurrent reconciler passes over the same history
// could both load stale state and lose an update.
func (a *Aggregator) RunCycle(ctx context.Context) (Snapshot, error) {
	result, err, shared := a.flight.Do("cycle", func() (any, error) {
		return a.runCycle(ctx)
	})
	if shared {
		a.logger.Debug().Msg("cycle shared with concurrent trigger")
	}
	if err != nil {
		return a.state.Get(), err
	}
	return result.(Snapshot), nil
}

func (a *Aggregator) runCycle(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CycleTimeout)
	defer cancel()

	report := engine.NewCycleReport()
	log := a.logger.With().Str("cycle_id", report.CycleID).Logger()

	records, err := a.collectRecords(ctx, report, log)
	if err != nil {
		log.Error().Err(err).Msg("cycle aborted, keeping previous state")
		return Snapshot{}, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	groups := engine.GroupSnapshots(records)
	current, live := engine.DetectCurrent(groups, a.now())

	var fresh []domain.GameResult
	for i, group := range groups {
		// The tail group is withheld from resolution while it still counts
		// as live; persisting it now would freeze a partial score under the
		// match's natural key. It resolves on a later cycle once the
		// recency window lapses.
		if live && i == len(groups)-1 {
			continue
		}
		if result, ok := engine.ResolveResult(group); ok {
			fresh = append(fresh, result)
		}
	}
	report.GamesResolved = len(fresh)

	// Always reload: the in-memory copy is not authoritative across
	// restarts or external edits.
	history, err := a.historyRepo.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load history, cycle aborted")
		return Snapshot{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	merged, added := engine.ReconcileHistory(history, fresh)
	report.GamesAdded = added
	leaderboard := engine.BuildLeaderboard(merged)

	if err := a.historyRepo.Save(ctx, merged); err != nil {
		log.Error().Err(err).Msg("failed to save history, discarding cycle state")
		return Snapshot{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := a.leaderboardRepo.Save(ctx, leaderboard); err != nil {
		log.Error().Err(err).Msg("failed to save leaderboard, discarding cycle state")
		return Snapshot{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	report.FinishedAt = a.now()
	snap := Snapshot{
		History:     merged,
		Leaderboard: leaderboard,
		Current:     current,
		Report:      report,
		UpdatedAt:   report.FinishedAt,
	}
	a.state.Replace(snap)

	log.Info().
		Int("artifacts", report.ArtifactsListed).
		Int("records", report.RecordsNormalized).
		Int("resolved", report.GamesResolved).
		Int("added", report.GamesAdded).
		Int("skips", len(report.Skips)).
		Bool("live_session", live).
		Msg("cycle completed")
	return snap, nil
}

// collectRecords lists all artifacts and fetches them in parallel, decoding
// and normalizing each one. Decode and normalization failures skip the
// artifact; fetch failures abort the cycle since a partial record set would
// segment into bogus sessions.
func (a *Aggregator) collectRecords(ctx context.Context, report *engine.CycleReport, log zerolog.Logger) ([]domain.SnapshotRecord, error) {
	listCtx, cancel := context.WithTimeout(ctx, constants.SourceTimeout)
	defer cancel()

	names, err := a.source.ListArtifacts(listCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	report.ArtifactsListed = len(names)

	var (
		mu      sync.Mutex
		records []domain.SnapshotRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.FetchConcurrency)
	for _, name := range names {
		name := name
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gCtx, constants.SourceTimeout)
			defer cancel()

			data, err := a.source.FetchArtifact(fetchCtx, name)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", name, err)
			}

			tree, err := savestate.Decode(data)
			if err != nil {
				log.Warn().Err(err).Str("artifact", name).Msg("skipping undecodable artifact")
				mu.Lock()
				report.Skip(name, engine.SkipDecodeFailed, err.Error())
				mu.Unlock()
				return nil
			}

			record, err := engine.Normalize(name, tree)
			if err != nil {
				log.Warn().Err(err).Str("artifact", name).Msg("skipping incomplete artifact")
				mu.Lock()
				report.Skip(name, engine.SkipIncomplete, err.Error())
				mu.Unlock()
				return nil
			}

			mu.Lock()
			records = append(records, record)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.RecordsNormalized = len(records)
	return records, nil
}
