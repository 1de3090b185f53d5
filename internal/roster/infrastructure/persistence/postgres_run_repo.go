package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

const createRunsTablePostgres = `
CREATE TABLE IF NOT EXISTS roster_runs (
	id             TEXT PRIMARY KEY,
	requested_at   TIMESTAMPTZ NOT NULL,
	status         TEXT NOT NULL,
	total_workers  INTEGER NOT NULL,
	solve_time_ms  BIGINT NOT NULL,
	error_message  TEXT NOT NULL DEFAULT ''
)`

// PostgresRunRepository implements ports.RunRepository using pgx/v5.
type PostgresRunRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRunRepository opens (creating if absent) the roster_runs table
// on the given pool.
func NewPostgresRunRepository(ctx context.Context, pool *pgxpool.Pool) (*PostgresRunRepository, error) {
	if _, err := pool.Exec(ctx, createRunsTablePostgres); err != nil {
		return nil, fmt.Errorf("persistence: creating roster_runs table: %w", err)
	}
	return &PostgresRunRepository{pool: pool}, nil
}

// RecordRun implements ports.RunRepository.
func (r *PostgresRunRepository) RecordRun(ctx context.Context, run ports.RosterRun) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO roster_runs (id, requested_at, status, total_workers, solve_time_ms, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`,
		run.ID,
		run.RequestedAt,
		run.Status.String(),
		run.TotalWorkers,
		run.SolveTimeMs,
		run.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("persistence: recording run %s: %w", run.ID, err)
	}
	return nil
}
