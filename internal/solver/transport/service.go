package transport

import (
	"context"

	"google.golang.org/grpc"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

// solverServer is implemented by the plugin-side process: whatever
// ports.SolverClient it wraps locally. The gRPC server handler below
// forwards into it.
type solverServer interface {
	Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error)
}

func solveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(SolveRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(solverServer).Solve(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/roster.solver.Solver/Solve",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(solverServer).Solve(ctx, req.(*SolveRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// serviceDesc is the hand-rolled equivalent of a protoc-generated
// _grpc.pb.go ServiceDesc: one unary method, "Solve", matching
// ports.SolverClient's single operation.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "roster.solver.Solver",
	HandlerType: (*solverServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Solve",
			Handler:    solveHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "roster/solver.proto",
}

// registerSolverServer registers impl against s using serviceDesc, the
// hand-written analogue of a generated RegisterSolverServer function.
func registerSolverServer(s *grpc.Server, impl solverServer) {
	s.RegisterService(&serviceDesc, impl)
}

// grpcSolverServer adapts a ports.SolverClient (almost always the
// in-process solverclient.ReferenceSolver, or a further backend it wraps)
// to the solverServer handler interface the gRPC service descriptor calls.
type grpcSolverServer struct {
	inner ports.SolverClient
}

func (s *grpcSolverServer) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	result, err := s.inner.Solve(ctx, req.toLPModel())
	if err != nil {
		return nil, err
	}
	return toSolveResponse(result), nil
}
