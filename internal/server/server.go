package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gameserver-stats/internal/domain"
	"gameserver-stats/internal/engine"
	"gameserver-stats/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Server exposes the aggregation engine's outputs. Read endpoints serve the
// last completed cycle's in-memory snapshot and never block on an in-flight
// cycle; only refresh/update paths run a cycle inline.
type Server struct {
	aggregator *service.Aggregator
	logger     zerolog.Logger
}

func NewServer(aggregator *service.Aggregator, logger zerolog.Logger) *Server {
	return &Server{aggregator: aggregator, logger: logger}
}

func (s *Server) Routes(router *mux.Router) {
	router.HandleFunc("/api/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)
	router.HandleFunc("/api/history", s.handleHistory).Methods(http.MethodGet)
	router.HandleFunc("/api/current", s.handleCurrent).Methods(http.MethodGet)
	router.HandleFunc("/api/update", s.handleUpdate).Methods(http.MethodPost)
}

type leaderboardResponse struct {
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

type historyResponse struct {
	Games     []domain.GameResult `json:"games"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type currentResponse struct {
	Active  bool                   `json:"active"`
	Session *domain.CurrentSession `json:"session,omitempty"`
}

type updateResponse struct {
	Games       []domain.GameResult       `json:"games"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	Report      *engine.CycleReport       `json:"report,omitempty"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	snap := s.aggregator.Current()
	s.writeJSON(w, http.StatusOK, leaderboardResponse{
		Leaderboard: emptyIfNil(snap.Leaderboard),
		UpdatedAt:   snap.UpdatedAt,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	snap := s.aggregator.Current()

	if r.URL.Query().Get("refresh") == "true" {
		fresh, err := s.aggregator.RunCycle(r.Context())
		if err != nil {
			// Stale data beats no data: log and fall back to the last
			// completed snapshot.
			s.logger.Warn().Err(err).Msg("refresh cycle failed, serving previous state")
		} else {
			snap = fresh
		}
	}

	s.writeJSON(w, http.StatusOK, historyResponse{
		Games:     emptyIfNil(snap.History),
		UpdatedAt: snap.UpdatedAt,
	})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	snap := s.aggregator.Current()
	s.writeJSON(w, http.StatusOK, currentResponse{
		Active:  snap.Current != nil,
		Session: snap.Current,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	snap, err := s.aggregator.RunCycle(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrRetrieval) {
			status = http.StatusBadGateway
		}
		s.writeError(w, status, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updateResponse{
		Games:       emptyIfNil(snap.History),
		Leaderboard: emptyIfNil(snap.Leaderboard),
		Report:      snap.Report,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
