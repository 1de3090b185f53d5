// Package ports declares the interfaces the application layer depends on
// and the infrastructure layer implements: the solver capability, the
// run-audit repository, and the result cache. None of these are known to
// internal/roster/domain or the pure services in
// internal/roster/application/services.
package ports

import (
	"context"
	"time"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// LPModel is the MIP text in standard LP format: sections Minimize,
// Subject To, Bounds, General, End, in that order.
type LPModel struct {
	Text string
	// Variables names every variable the model declares, in emission
	// order, so a solver client that returns a sparse primal map can still
	// be validated against the full variable set if desired.
	Variables []string
}

// SolveStatus is the solver's own verdict on one phase, distinct from
// domain.Status (the engine's terminal three-way outcome) since a
// non-optimal phase-2 still yields an overall domain.StatusOptimal result
// via silent fallback.
type SolveStatus int

const (
	SolveOptimal SolveStatus = iota
	SolveInfeasible
	SolveError
)

// SolveResult is what a solver invocation returns: a status and, when
// optimal, a primal value per variable name.
type SolveResult struct {
	Status       SolveStatus
	PrimalValues map[string]float64
	Message      string
}

// SolverClient is the capability boundary consumed by the Solver Driver:
// build model text, invoke, parse primal. Implementations may be
// in-process or cross a process boundary (internal/solver/transport).
type SolverClient interface {
	Solve(ctx context.Context, model LPModel) (SolveResult, error)
}

// SolverClientFactory produces a fresh SolverClient per call. The Solver
// Driver calls it once per phase, using a fresh instance each time rather
// than reusing state across calls.
type SolverClientFactory func(ctx context.Context) (SolverClient, error)

// RunRepository records the audit trail of solve invocations. This is
// reporting metadata only: the pure engine never reads it back.
type RunRepository interface {
	RecordRun(ctx context.Context, run RosterRun) error
}

// RosterRun is one audited solve invocation.
type RosterRun struct {
	ID           string
	RequestedAt  time.Time
	Status       domain.Status
	TotalWorkers int
	SolveTimeMs  int64
	ErrorMessage string
}

// ResultCache memoizes RosterResult keyed by a stable hash of
// (demand, config). Consulted by the application command handler before
// invoking the pure engine, populated after; the engine itself stays
// cache-unaware.
type ResultCache interface {
	Get(ctx context.Context, key string) (domain.RosterResult, bool, error)
	Set(ctx context.Context, key string, result domain.RosterResult, ttl time.Duration) error
}
