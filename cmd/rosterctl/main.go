// Command rosterctl is the CLI entrypoint for the warehouse roster
// optimization engine: load config, wire the solver/audit/cache
// dependencies, hand the app to the cli adapter, execute.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/shiftforge/rosterengine/adapter/cli"
	"github.com/shiftforge/rosterengine/internal/roster/application/commands"
	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/cache"
	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/persistence"
	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/solverclient"
	"github.com/shiftforge/rosterengine/pkg/config"
	"github.com/shiftforge/rosterengine/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()
	cli.SetLogger(logger)

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	factory, err := solverclient.NewFactory(cfg, logger)
	if err != nil {
		logger.Error("failed to build solver client factory", "error", err)
		os.Exit(1)
	}

	runs, resultCache := wireAuditAndCache(ctx, cfg, logger)

	handler := &commands.AuditedSolveRosterHandler{
		Inner: commands.NewSolveRosterHandler(factory),
		Cache: resultCache,
		Runs:  runs,
	}
	cli.SetApp(cli.NewApp(handler))

	cli.Execute()
}

// wireAuditAndCache picks the audit/cache backends by deployment mode:
// local mode gets a SQLite run repository and an in-process cache; full
// mode gets Postgres and Redis. Failures to connect degrade to a nil
// repository and an in-process cache rather than failing the CLI outright, since the audit
// trail and cache are reporting/optimization layers, never required for a
// correct solve.
func wireAuditAndCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.RunRepository, ports.ResultCache) {
	if cfg.IsLocalMode() {
		sqlDB, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			logger.Warn("failed to open sqlite database, audit trail disabled", "error", err)
			return nil, cache.NewInMemoryCache()
		}
		runs, err := persistence.NewSQLiteRunRepository(ctx, sqlDB)
		if err != nil {
			logger.Warn("failed to initialize sqlite run repository", "error", err)
			return nil, cache.NewInMemoryCache()
		}
		return runs, cache.NewInMemoryCache()
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("failed to connect to postgres, audit trail disabled", "error", err)
		return nil, cache.NewInMemoryCache()
	}
	pgRuns, err := persistence.NewPostgresRunRepository(ctx, pool)
	var runs ports.RunRepository
	if err != nil {
		logger.Warn("failed to initialize postgres run repository", "error", err)
	} else {
		runs = pgRuns
	}

	redisCache, err := cache.NewRedisCacheFromURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("failed to connect to redis, falling back to in-process cache", "error", err)
		return runs, cache.NewInMemoryCache()
	}
	return runs, redisCache
}
