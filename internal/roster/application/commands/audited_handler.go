package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/roster/application/services"
	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// ResultCacheTTL is how long a cached RosterResult is considered fresh
// before AuditedSolveRosterHandler recomputes it.
const ResultCacheTTL = 15 * time.Minute

// AuditedSolveRosterHandler wraps SolveRosterHandler with the result cache
// and run-audit-trail, consulted before invoking the pure engine and
// populated after. The wrapped engine itself stays pure: neither Cache nor
// Runs is visible to SolveRosterHandler or the services it calls.
type AuditedSolveRosterHandler struct {
	Inner *SolveRosterHandler
	Cache ports.ResultCache
	Runs  ports.RunRepository
}

// Handle consults the cache, falls through to Inner.Handle on a miss, and
// records a RosterRun either way. Cache and audit errors are discarded
// without being logged or returned, so a cache/audit failure never blocks
// a solve: a failed Get is treated as a miss and a failed Set is ignored.
func (h *AuditedSolveRosterHandler) Handle(ctx context.Context, cmd SolveRosterCommand) (domain.RosterResult, error) {
	requestedAt := time.Now()
	key := CacheKey(cmd.Demand, cmd.Config)

	if h.Cache != nil {
		if cached, ok, err := h.Cache.Get(ctx, key); err == nil && ok {
			h.recordRun(ctx, requestedAt, cached)
			return cached, nil
		}
	}

	result, err := h.Inner.Handle(ctx, cmd)
	if err != nil {
		return domain.RosterResult{}, err
	}

	if h.Cache != nil && result.Status == domain.StatusOptimal {
		_ = h.Cache.Set(ctx, key, result, ResultCacheTTL)
	}
	h.recordRun(ctx, requestedAt, result)

	return result, nil
}

// SetProgress delegates to Inner so a caller holding either a bare
// *SolveRosterHandler or an *AuditedSolveRosterHandler can install a
// progress reporter the same way.
func (h *AuditedSolveRosterHandler) SetProgress(r services.ProgressReporter) {
	h.Inner.SetProgress(r)
}

func (h *AuditedSolveRosterHandler) recordRun(ctx context.Context, requestedAt time.Time, result domain.RosterResult) {
	if h.Runs == nil {
		return
	}
	_ = h.Runs.RecordRun(ctx, ports.RosterRun{
		ID:           uuid.NewString(),
		RequestedAt:  requestedAt,
		Status:       result.Status,
		TotalWorkers: result.TotalWorkers,
		SolveTimeMs:  result.SolveTimeMs,
		ErrorMessage: result.ErrorMessage,
	})
}
