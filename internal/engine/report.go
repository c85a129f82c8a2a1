package engine

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	SkipFetchFailed  = "fetch_failed"
	SkipDecodeFailed = "decode_failed"
	SkipIncomplete   = "incomplete_record"
)

type ArtifactSkip struct {
	Artifact string `json:"artifact"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail,omitempty"`
}

// CycleReport accounts for one aggregation cycle: how many artifacts were
// listed, how many records survived normalization, and which artifacts were
// skipped and why. Skipped artifacts never fail a cycle, but they should
// never vanish silently either.
type CycleReport struct {
	CycleID           string         `json:"cycleId"`
	StartedAt         time.Time      `json:"startedAt"`
	FinishedAt        time.Time      `json:"finishedAt"`
	ArtifactsListed   int            `json:"artifactsListed"`
	RecordsNormalized int            `json:"recordsNormalized"`
	GamesResolved     int            `json:"gamesResolved"`
	GamesAdded        int            `json:"gamesAdded"`
	Skips             []ArtifactSkip `json:"skips"`
}

func NewCycleReport() *CycleReport {
	return &CycleReport{
		CycleID:   gonanoid.Must(),
		StartedAt: time.Now(),
		Skips:     []ArtifactSkip{},
	}
}

func (r *CycleReport) Skip(artifact, reason, detail string) {
	r.Skips = append(r.Skips, ArtifactSkip{Artifact: artifact, Reason: reason, Detail: detail})
}
