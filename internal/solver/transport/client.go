package transport

import (
	"context"

	"google.golang.org/grpc"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

// GRPCClient is the host-side adapter implementing ports.SolverClient over
// a grpc.ClientConn to a solver plugin process.
type GRPCClient struct {
	conn *grpc.ClientConn
}

// Solve implements ports.SolverClient by invoking the Solve RPC with the
// JSON codec selected via content-subtype, since no protoc-generated
// client stub exists for this service.
func (c *GRPCClient) Solve(ctx context.Context, model ports.LPModel) (ports.SolveResult, error) {
	req := toSolveRequest(model)
	resp := new(SolveResponse)
	err := c.conn.Invoke(ctx, "/roster.solver.Solver/Solve", req, resp, grpc.CallContentSubtype(jsonCodec{}.Name()))
	if err != nil {
		return ports.SolveResult{}, err
	}
	return resp.toSolveResult(), nil
}
