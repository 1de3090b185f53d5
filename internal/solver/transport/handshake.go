// Package transport implements the process-isolation boundary an external
// MIP solver backend speaks: a HashiCorp go-plugin handshake, a
// plugin.Plugin implementation, and a hand-rolled gRPC service carrying
// the Solve capability across a child-process boundary. The wire messages
// are JSON-encoded rather than protoc-generated; the service has a single
// unary method and no streaming, so a generated stub buys nothing here.
package transport

import (
	"github.com/hashicorp/go-plugin"
)

// HandshakeConfig verifies that host and plugin were built against
// compatible versions of this protocol.
var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ROSTER_SOLVER_PLUGIN",
	MagicCookieValue: "roster-solver-v1",
}

// PluginMap is the single named plugin a solver backend process serves.
var PluginMap = map[string]plugin.Plugin{
	"solver": &SolverPlugin{},
}
