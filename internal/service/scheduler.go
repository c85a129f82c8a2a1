package service

import (
	"context"
	"sync"
	"time"

	"gameserver-stats/internal/config"

	"github.com/rs/zerolog"
)

// Scheduler drives the aggregator on a fixed interval. Each tick shares the
// aggregator's single-flight group with on-demand triggers, so a slow cycle
// is never overlapped by the next tick.
type Scheduler struct {
	aggregator *Aggregator
	interval   time.Duration
	logger     zerolog.Logger
	done       chan struct{}
	wg         sync.WaitGroup
}

func NewScheduler(aggregator *Aggregator, cfg *config.Config, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		aggregator: aggregator,
		interval:   cfg.PollInterval,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")
}

func (s *Scheduler) Stop() {
	close(s.done)
	s.wg.Wait()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// First cycle runs immediately so fresh data is available right after
	// startup instead of one full interval later.
	s.tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.done:
			return
		}
	}
}

func (s *Scheduler) tick() {
	if _, err := s.aggregator.RunCycle(context.Background()); err != nil {
		s.logger.Error().Err(err).Msg("scheduled cycle failed")
	}
}
