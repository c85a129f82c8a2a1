package constants

import "time"

const (
	// RecencyWindow bounds how old the newest snapshot of the tail session
	// group may be for that session to still count as live.
	RecencyWindow = 90 * time.Second

	DefaultPollInterval = 45 * time.Second
)

const (
	SourceTimeout    = 10 * time.Second
	DatabaseTimeout  = 5 * time.Second
	CycleTimeout     = 30 * time.Second
	FetchConcurrency = 8
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)
