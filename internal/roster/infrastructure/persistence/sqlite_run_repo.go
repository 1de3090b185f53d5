// Package persistence provides ports.RunRepository implementations for the
// solve audit trail: a SQLite repository for local/CLI mode and a Postgres
// repository for the full deployment. The queries are hand-written; the
// audit trail is a single narrow insert-only table and doesn't warrant a
// generated query layer.
package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

const createRunsTableSQLite = `
CREATE TABLE IF NOT EXISTS roster_runs (
	id             TEXT PRIMARY KEY,
	requested_at   TEXT NOT NULL,
	status         TEXT NOT NULL,
	total_workers  INTEGER NOT NULL,
	solve_time_ms  INTEGER NOT NULL,
	error_message  TEXT NOT NULL DEFAULT ''
)`

// SQLiteRunRepository implements ports.RunRepository using modernc.org/sqlite.
type SQLiteRunRepository struct {
	db *sql.DB
}

// NewSQLiteRunRepository opens (creating if absent) the roster_runs table
// on the given connection.
func NewSQLiteRunRepository(ctx context.Context, dbConn *sql.DB) (*SQLiteRunRepository, error) {
	if _, err := dbConn.ExecContext(ctx, createRunsTableSQLite); err != nil {
		return nil, fmt.Errorf("persistence: creating roster_runs table: %w", err)
	}
	return &SQLiteRunRepository{db: dbConn}, nil
}

// RecordRun implements ports.RunRepository.
func (r *SQLiteRunRepository) RecordRun(ctx context.Context, run ports.RosterRun) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roster_runs (id, requested_at, status, total_workers, solve_time_ms, error_message)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.RequestedAt.Format("2006-01-02T15:04:05.000Z07:00"),
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
