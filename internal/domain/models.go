package domain

import (
	"fmt"
	"time"
)

// SnapshotRecord is one normalized server save-state capture. Records from a
// single polling cycle are totally ordered by Timestamp.
type SnapshotRecord struct {
	SourceName string
	Timestamp  time.Time
	Round      int
	Map        string
	Scores     ScoreComponents
	Team1      map[string]RosterEntry
	Team2      map[string]RosterEntry
}

// ScoreComponents holds the up-to-three score pairs a snapshot may carry.
// A nil component was absent from the snapshot and contributes nothing.
type ScoreComponents struct {
	FirstHalf  *TeamScore
	SecondHalf *TeamScore
	Overtime   *TeamScore
}

type TeamScore struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// RosterEntry is one player slot as it appears in a raw snapshot roster.
type RosterEntry struct {
	Name   string
	Kills  int
	Deaths int
}

type PlayerScore struct {
	Name   string `json:"name"`
	Kills  int    `json:"kills"`
	Deaths int    `json:"deaths"`
}

type Rosters struct {
	Team1 []PlayerScore `json:"team1"`
	Team2 []PlayerScore `json:"team2"`
}

// GameResult is a finalized match outcome. Winner and Loser are both empty
// (never nil) when the final score is tied.
type GameResult struct {
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Duration   string    `json:"duration"`
	Map        string    `json:"map"`
	FinalScore TeamScore `json:"finalScore"`
	Players    Rosters   `json:"players"`
	Winner     []string  `json:"winner"`
	Loser      []string  `json:"loser"`
}

// Key is the natural deduplication key: two results sharing it are the same
// match regardless of which polling cycle observed them.
func (g GameResult) Key() string {
	return fmt.Sprintf("%d|%s", g.StartTime.Unix(), g.Map)
}

// CurrentSession is a partial view of an in-progress match. Rosters carry
// names only since kills and deaths are not final.
type CurrentSession struct {
	StartTime           time.Time `json:"startTime"`
	CurrentSnapshotTime time.Time `json:"currentSnapshotTime"`
	Duration            string    `json:"duration"`
	Map                 string    `json:"map"`
	CurrentScore        TeamScore `json:"currentScore"`
	CurrentRound        int       `json:"currentRound"`
	Team1               []string  `json:"team1"`
	Team2               []string  `json:"team2"`
}

type LeaderboardEntry struct {
	Name          string  `json:"name"`
	MatchesPlayed int     `json:"matchesPlayed"`
	Wins          int     `json:"wins"`
	TotalKills    int     `json:"totalKills"`
	TotalDeaths   int     `json:"totalDeaths"`
	KD            float64 `json:"kd"`
}
