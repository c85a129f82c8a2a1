package fx

import (
	"gameserver-stats/internal/config"
	"gameserver-stats/internal/database"
	"gameserver-stats/internal/logger"
	"gameserver-stats/internal/remote"
	"gameserver-stats/internal/repository"
	"gameserver-stats/internal/server"
	"gameserver-stats/internal/service"

	"go.uber.org/fx"
)

func ProvideSource(client *remote.Client) service.Source {
	return client
}

func ProvideHistoryStore(repo *repository.HistoryRepository) service.HistoryStore {
	return repo
}

func ProvideLeaderboardStore(repo *repository.LeaderboardRepository) service.LeaderboardStore {
	return repo
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewHistoryRepository),
	fx.Provide(repository.NewLeaderboardRepository),
	fx.Provide(ProvideHistoryStore),
	fx.Provide(ProvideLeaderboardStore),
	// remote source
	fx.Provide(remote.NewClient),
	fx.Provide(ProvideSource),
	// svc
	fx.Provide(service.NewState),
	fx.Provide(service.NewAggregator),
	fx.Provide(service.NewScheduler),
	// server
	fx.Provide(server.NewServer),
)
