// Package commands holds the single application-layer entry point that
// orchestrates the pure pipeline stages and the two-phase solve against
// the SolverClient port. There is no outbox or unit-of-work here because
// the pure engine persists nothing of its own; the audit trail and cache
// live one layer further out, wrapping this handler.
package commands

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/roster/application/services"
	"github.com/shiftforge/rosterengine/internal/roster/domain"
	"github.com/shiftforge/rosterengine/internal/solver/sdk"
)

// SolveRosterCommand is the input to one solve invocation: an immutable
// demand matrix and configuration.
type SolveRosterCommand struct {
	Demand domain.DemandMatrix
	Config domain.Config
}

// SolveRosterHandler runs the five-stage pipeline plus the two-phase
// Solver Driver protocol. It holds no state between calls beyond its
// constructor-injected collaborators: no caches, no global mutable state.
type SolveRosterHandler struct {
	SolverFactory ports.SolverClientFactory
	Progress      services.ProgressReporter
	// SinglePhase skips the part-timer-share pass even when PTCapPct > 0,
	// for callers that only need phase-1 headcount. The default CLI and
	// worker paths leave it false.
	SinglePhase bool
}

// NewSolveRosterHandler builds a handler around factory. Progress defaults
// to services.NoopProgress{} when callers don't need notifications.
func NewSolveRosterHandler(factory ports.SolverClientFactory) *SolveRosterHandler {
	return &SolveRosterHandler{SolverFactory: factory, Progress: services.NoopProgress{}}
}

// SetProgress swaps the reporter a subsequent Handle call reports stages to.
// Callers that want live progress (the CLI, the worker) install a
// *services.ChannelProgress before invoking Handle and drain it concurrently.
func (h *SolveRosterHandler) SetProgress(r services.ProgressReporter) {
	h.Progress = r
}

// Handle runs the engine once and returns a terminal RosterResult. It never
// returns a non-nil error for a domain-level infeasible/solver-failure
// outcome; those are reported via RosterResult.Status. The error return
// is reserved for inputs the handler must refuse outright (invalid
// configuration) or a context cancellation.
func (h *SolveRosterHandler) Handle(ctx context.Context, cmd SolveRosterCommand) (domain.RosterResult, error) {
	if err := cmd.Config.Validate(); err != nil {
		return domain.RosterResult{}, err
	}

	reporter := h.Progress
	if reporter == nil {
		reporter = services.NoopProgress{}
	}

	start := time.Now()
	required := domain.DeriveRequired(cmd.Demand, cmd.Config.ProductivityRate)

	reporter.Report("shift_catalogue_and_pruning")
	universe := services.BuildUniverse(cmd.Config, cmd.Demand)

	reporter.Report("phase1")
	phase1Model := services.BuildModel(cmd.Config, universe, cmd.Demand, required, services.Phase1, 0)
	phase1, status, msg, err := h.invoke(ctx, phase1Model)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.RosterResult{}, ctxErr
		}
		return domain.TerminalResult(domain.StatusError, required, "phase 1: "+err.Error(), elapsedMs(start)), nil
	}
	if status != ports.SolveOptimal {
		return domain.TerminalResult(mapStatus(status), required, "phase 1: "+msg, elapsedMs(start)), nil
	}

	finalPrimal := phase1.PrimalValues
	headcount := roundSum(phase1.PrimalValues)

	if !h.SinglePhase && cmd.Config.PTCapPct > 0 {
		reporter.Report("phase2")
		phase2Model := services.BuildModel(cmd.Config, universe, cmd.Demand, required, services.Phase2, headcount)
		phase2, phase2Status, _, phase2Err := h.invoke(ctx, phase2Model)
		// Phase-2 failure of any kind silently falls back to the phase-1
		// assignment, which is already optimal for headcount.
		if phase2Err == nil && phase2Status == ports.SolveOptimal {
			finalPrimal = phase2.PrimalValues
		}
	}

	reporter.Report("roster_reification")
	workers, coverage, counts := services.Reify(finalPrimal, universe)

	return domain.RosterResult{
		Status:       domain.StatusOptimal,
		Workers:      workers,
		TotalWorkers: len(workers),
		CountsByType: counts,
		Coverage:     coverage,
		Required:     required,
		SolveTimeMs:  elapsedMs(start),
	}, nil
}

// invoke acquires a fresh solver instance, never reused across calls,
// and runs one phase. A non-nil error here (backend unavailable, transport
// failure, solver crash) is an error outcome, not a Go-level failure of
// Handle itself; the caller maps it into a terminal StatusError
// RosterResult unless ctx was the actual cause.
func (h *SolveRosterHandler) invoke(ctx context.Context, model ports.LPModel) (ports.SolveResult, ports.SolveStatus, string, error) {
	client, err := h.SolverFactory(ctx)
	if err != nil {
		return ports.SolveResult{}, ports.SolveError, "", fmt.Errorf("solver unavailable: %w", err)
	}
	if closer, ok := client.(interface{ Close() }); ok {
		defer closer.Close()
	}
	result, err := client.Solve(ctx, model)
	if err != nil {
		if sdk.IsCircuitOpen(err) {
			return ports.SolveResult{}, ports.SolveError, "circuit open", nil
		}
		return ports.SolveResult{}, ports.SolveError, "", fmt.Errorf("solver call failed: %w", err)
	}
	return result, result.Status, result.Message, nil
}

func mapStatus(s ports.SolveStatus) domain.Status {
	switch s {
	case ports.SolveInfeasible:
		return domain.StatusInfeasible
	default:
		return domain.StatusError
	}
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

// roundSum computes N* = round(Σ primal values), clamped at 0.
func roundSum(primal map[string]float64) int {
	var sum float64
	for _, v := range primal {
		sum += v
	}
	n := int(math.Round(sum))
	if n < 0 {
		return 0
	}
	return n
}
