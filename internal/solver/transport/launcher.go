package transport

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	hcplugin "github.com/hashicorp/go-plugin"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/solver/sdk"
)

// Launcher starts one solver plugin process per call: a fresh instance per
// invocation, its handle scoped to the phase that acquired it and released
// before the next.
type Launcher struct {
	// BinaryPath is the solver plugin executable, typically cmd/solverd's
	// build output.
	BinaryPath string
	// Logger receives go-plugin's own handshake and subprocess diagnostics.
	// Nil falls back to slog.Default().
	Logger *slog.Logger
}

// NewFactory returns a ports.SolverClientFactory that launches a fresh
// plugin process and returns a client wrapping its gRPC connection; the
// client's Close method kills the process once the caller is done with it
// for this phase.
func (l Launcher) NewFactory() ports.SolverClientFactory {
	return func(ctx context.Context) (ports.SolverClient, error) {
		client := hcplugin.NewClient(&hcplugin.ClientConfig{
			HandshakeConfig: HandshakeConfig,
			Plugins:         PluginMap,
			Cmd:             exec.Command(l.BinaryPath),
			Logger:          newHclogAdapter(l.Logger),
			AllowedProtocols: []hcplugin.Protocol{
				hcplugin.ProtocolGRPC,
			},
		})

		rpcClient, err := client.Client()
		if err != nil {
			client.Kill()
			return nil, fmt.Errorf("%w: %v", sdk.ErrSolverUnavailable, err)
		}

		raw, err := rpcClient.Dispense("solver")
		if err != nil {
			client.Kill()
			return nil, fmt.Errorf("%w: %v", sdk.ErrSolverUnavailable, err)
		}

		grpcClient, ok := raw.(*GRPCClient)
		if !ok {
			client.Kill()
			return nil, fmt.Errorf("%w: unexpected dispensed type %T", sdk.ErrSolverUnavailable, raw)
		}

		return &managedClient{GRPCClient: grpcClient, process: client}, nil
	}
}

// managedClient pairs a GRPCClient with the go-plugin process handle that
// must be killed once the phase invoking it returns.
type managedClient struct {
	*GRPCClient
	process *hcplugin.Client
}

// Close kills the backing plugin process, releasing the scoped solver
// handle.
func (m *managedClient) Close() {
	m.process.Kill()
}
