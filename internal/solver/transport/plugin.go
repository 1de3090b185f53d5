package transport

import (
	"context"

	hcplugin "github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

// SolverPlugin is the plugin.Plugin implementation for the solver boundary.
// The host process dispenses it to obtain a GRPCClient; the plugin-side
// process embeds a concrete ports.SolverClient in Impl and serves it.
type SolverPlugin struct {
	hcplugin.Plugin
	// Impl is the concrete solver, set on the plugin-process side only.
	Impl ports.SolverClient
}

var _ hcplugin.GRPCPlugin = (*SolverPlugin)(nil)

// GRPCServer registers Impl against s using the hand-rolled service
// descriptor, run on the plugin-process side.
func (p *SolverPlugin) GRPCServer(broker *hcplugin.GRPCBroker, s *grpc.Server) error {
	registerSolverServer(s, &grpcSolverServer{inner: p.Impl})
	return nil
}

// GRPCClient returns a GRPCClient wrapping c, run on the host-process side.
func (p *SolverPlugin) GRPCClient(ctx context.Context, broker *hcplugin.GRPCBroker, c *grpc.ClientConn) (any, error) {
	return &GRPCClient{conn: c}, nil
}
