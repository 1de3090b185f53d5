// Command worker is the async solve consumer: it listens for
// roster.solve_requested events, runs the engine, and publishes a
// roster.solved event with the outcome summary. It also serves a /healthz
// endpoint with processed/failed counters and shuts down cleanly on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/shiftforge/rosterengine/internal/roster/application/commands"
	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/roster/application/services"
	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/cache"
	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/eventbus"
	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/persistence"
	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/solverclient"
	"github.com/shiftforge/rosterengine/pkg/config"
	"github.com/shiftforge/rosterengine/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()
	logger.Info("starting roster worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

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

	resultCache, runs := workerAuditAndCache(ctx, cfg, logger)
	handler := &commands.AuditedSolveRosterHandler{
		Inner: commands.NewSolveRosterHandler(factory),
		Cache: resultCache,
		Runs:  runs,
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	var processed, failed atomic.Int64
	solve := func(ctx context.Context, event eventbus.SolveRequestedEvent) (eventbus.SolvedEvent, error) {
		solveCtx, cancel := context.WithTimeout(ctx, config.SolveTimeout())
		defer cancel()

		progress := services.NewChannelProgress()
		handler.SetProgress(progress)
		progressDone := make(chan struct{})
		go func() {
			defer close(progressDone)
			for stage := range progress.Stages {
				if err := publisher.PublishProgress(ctx, eventbus.ProgressEvent{RunID: event.RunID, Stage: stage}); err != nil {
					logger.Warn("failed to publish progress event", "run_id", event.RunID, "stage", stage, "error", err)
				}
			}
		}()

		result, err := handler.Handle(solveCtx, commands.SolveRosterCommand{
			Demand: event.Demand,
			Config: event.Config.ToDomain(),
		})
		close(progress.Stages)
		<-progressDone
		if err != nil {
			failed.Add(1)
			return eventbus.SolvedEvent{}, err
		}
		processed.Add(1)
		return eventbus.SolvedEvent{
			RunID:        event.RunID,
			Status:       result.Status.String(),
			TotalWorkers: result.TotalWorkers,
			SolveTimeMs:  result.SolveTimeMs,
			ErrorMessage: result.ErrorMessage,
		}, nil
	}

	consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:       cfg.RabbitMQURL,
		Publisher: publisher,
		Handler:   solve,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to connect consumer to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	if cfg.WorkerHealthAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":    "ok",
				"processed": processed.Load(),
				"failed":    failed.Load(),
			})
		})

		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("health server error", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = healthSrv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("worker ready, consuming solve requests")
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped with error", "error", err)
	}

	logger.Info("worker stopped")
}

// workerAuditAndCache wires the same cache/audit backends as rosterctl's
// wireAuditAndCache: SQLite+in-process cache in local mode, Postgres+Redis
// otherwise. The worker only runs against RabbitMQ, so it is typically
// deployed in full mode, but local mode is honored for development.
func workerAuditAndCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ResultCache, ports.RunRepository) {
	if cfg.IsLocalMode() {
		sqlDB, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			logger.Warn("failed to open sqlite database, audit trail disabled", "error", err)
			return cache.NewInMemoryCache(), nil
		}
		runs, err := persistence.NewSQLiteRunRepository(ctx, sqlDB)
		if err != nil {
			logger.Warn("failed to initialize sqlite run repository", "error", err)
			return cache.NewInMemoryCache(), nil
		}
		return cache.NewInMemoryCache(), runs
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("failed to connect to postgres, audit trail disabled", "error", err)
		return cache.NewInMemoryCache(), nil
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
		return cache.NewInMemoryCache(), runs
	}
	return redisCache, runs
}
