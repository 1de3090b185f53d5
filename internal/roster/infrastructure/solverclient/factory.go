package solverclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/solver/transport"
	"github.com/shiftforge/rosterengine/pkg/config"
)

// NewFactory builds the ports.SolverClientFactory the application layer's
// command handler calls once per solver phase, per cfg.SolverBackend:
// "inprocess" wraps a fresh ReferenceSolver in a circuit breaker (the
// default, dependency-free path exercised by the test suite); "plugin"
// launches a fresh internal/solver/transport child process per call, since
// a solver handle is scoped to one phase and never reused across calls.
func NewFactory(cfg *config.Config, logger *slog.Logger) (ports.SolverClientFactory, error) {
	switch cfg.SolverBackend {
	case "", "inprocess":
		return func(ctx context.Context) (ports.SolverClient, error) {
			inner := &ReferenceSolver{}
			return NewCircuitBreakerClient("inprocess-reference", inner, DefaultBreakerConfig(), logger), nil
		}, nil
	case "plugin":
		if cfg.SolverPluginPath == "" {
			return nil, fmt.Errorf("solverclient: SOLVER_PLUGIN_PATH must be set when SOLVER_BACKEND=plugin")
		}
		launcher := transport.Launcher{BinaryPath: cfg.SolverPluginPath, Logger: logger}
		pluginFactory := launcher.NewFactory()
		return func(ctx context.Context) (ports.SolverClient, error) {
			inner, err := pluginFactory(ctx)
			if err != nil {
				return nil, err
			}
			return NewCircuitBreakerClient("plugin-"+cfg.SolverPluginPath, inner, DefaultBreakerConfig(), logger), nil
		}, nil
	default:
		return nil, fmt.Errorf("solverclient: unknown SOLVER_BACKEND %q", cfg.SolverBackend)
	}
}
