package solverclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/solver/sdk"
)

// BreakerConfig configures CircuitBreakerClient.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the breaker settings used when a caller
// supplies none.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// CircuitBreakerClient wraps any ports.SolverClient with a
// gobreaker.CircuitBreaker, tripping after repeated backend failures and
// surfacing sdk.ErrCircuitOpen as an error-status terminal outcome instead
// of forwarding calls to a backend that keeps failing. A single wrapped
// client suffices: the roster engine talks to exactly one solver backend
// per process.
type CircuitBreakerClient struct {
	inner   ports.SolverClient
	breaker *gobreaker.CircuitBreaker[ports.SolveResult]
	logger  *slog.Logger
}

// NewCircuitBreakerClient wraps inner with a fresh circuit breaker named id.
func NewCircuitBreakerClient(id string, inner ports.SolverClient, cfg BreakerConfig, logger *slog.Logger) *CircuitBreakerClient {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        id,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("solver circuit breaker state changed",
				"solver_id", name, "from", from.String(), "to", to.String())
		},
	}
	return &CircuitBreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[ports.SolveResult](settings),
		logger:  logger,
	}
}

// Solve implements ports.SolverClient.
func (c *CircuitBreakerClient) Solve(ctx context.Context, model ports.LPModel) (ports.SolveResult, error) {
	result, err := c.breaker.Execute(func() (ports.SolveResult, error) {
		return c.inner.Solve(ctx, model)
	})
	if err == gobreaker.ErrOpenState {
		c.logger.Warn("solver call rejected: circuit open")
		return ports.SolveResult{}, sdk.ErrCircuitOpen
	}
	return result, err
}

// State returns the breaker's current state string ("closed", "open",
// "half-open"), for health/diagnostic reporting.
func (c *CircuitBreakerClient) State() string {
	return c.breaker.State().String()
}

// Close releases the wrapped client's resources, forwarding to inner when
// it is itself closeable (e.g. a plugin-process-backed client that must
// kill its child process). A no-op for closeable-free inner clients such
// as ReferenceSolver.
func (c *CircuitBreakerClient) Close() {
	if closer, ok := c.inner.(interface{ Close() }); ok {
		closer.Close()
	}
}
