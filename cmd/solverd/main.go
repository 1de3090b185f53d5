// Command solverd is a reference external MIP solver backend: a
// go-plugin child process that serves internal/solver/transport's
// gRPC-over-JSON protocol, backed by the same dependency-free greedy
// reference solver the in-process path uses. It exists
// to exercise the process-isolation boundary end to end, since the engine
// itself must not assume a particular backend; a real deployment would
// swap this binary for one wrapping HiGHS, CBC, or OR-Tools.
package main

import (
	hcplugin "github.com/hashicorp/go-plugin"

	"github.com/shiftforge/rosterengine/internal/roster/infrastructure/solverclient"
	"github.com/shiftforge/rosterengine/internal/solver/transport"
	"github.com/shiftforge/rosterengine/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	hcplugin.Serve(&hcplugin.ServeConfig{
		HandshakeConfig: transport.HandshakeConfig,
		Plugins: map[string]hcplugin.Plugin{
			"solver": &transport.SolverPlugin{Impl: &solverclient.ReferenceSolver{}},
		},
		GRPCServer: hcplugin.DefaultGRPCServer,
		Logger:     transport.NewHCLogger(logger),
	})
}
