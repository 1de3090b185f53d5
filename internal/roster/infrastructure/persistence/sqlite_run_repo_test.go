package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

func TestSQLiteRunRepository_RecordRun(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	repo, err := NewSQLiteRunRepository(context.Background(), sqlDB)
	require.NoError(t, err)

	run := ports.RosterRun{
		ID:           "run-1",
		RequestedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Status:       domain.StatusOptimal,
		TotalWorkers: 12,
		SolveTimeMs:  87,
	}
	require.NoError(t, repo.RecordRun(context.Background(), run))

	var status string
	var totalWorkers int
	err = sqlDB.QueryRow("SELECT status, total_workers FROM roster_runs WHERE id = ?", "run-1").
		Scan(&status, &totalWorkers)
	require.NoError(t, err)
	assert.Equal(t, "optimal", status)
	assert.Equal(t, 12, totalWorkers)
}

func TestSQLiteRunRepository_RecordRun_ErrorMessage(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()

	repo, err := NewSQLiteRunRepository(context.Background(), sqlDB)
	require.NoError(t, err)

	run := ports.RosterRun{
		ID:           "run-2",
		RequestedAt:  time.Now(),
		Status:       domain.StatusInfeasible,
		ErrorMessage: "phase 1: infeasible",
	}
	require.NoError(t, repo.RecordRun(context.Background(), run))

	var errMsg string
	err = sqlDB.QueryRow("SELECT error_message FROM roster_runs WHERE id = ?", "run-2").Scan(&errMsg)
	require.NoError(t, err)
	assert.Equal(t, "phase 1: infeasible", errMsg)
}
