package transport

import "github.com/shiftforge/rosterengine/internal/roster/application/ports"

// SolveRequest is the wire message for the Solve RPC: the LP model text
// plus its declared variable list (ports.LPModel), JSON-encoded by
// jsonCodec in place of a protoc-generated message.
type SolveRequest struct {
	Text      string   `json:"text"`
	Variables []string `json:"variables"`
}

func toSolveRequest(model ports.LPModel) *SolveRequest {
	return &SolveRequest{Text: model.Text, Variables: model.Variables}
}

func (r *SolveRequest) toLPModel() ports.LPModel {
	return ports.LPModel{Text: r.Text, Variables: r.Variables}
}

// SolveResponse is the wire message returned by the Solve RPC.
type SolveResponse struct {
	Status       int32              `json:"status"`
	PrimalValues map[string]float64 `json:"primal_values,omitempty"`
	Message      string             `json:"message,omitempty"`
}

func toSolveResponse(result ports.SolveResult) *SolveResponse {
	return &SolveResponse{
		Status:       int32(result.Status),
		PrimalValues: result.PrimalValues,
		Message:      result.Message,
	}
}

func (r *SolveResponse) toSolveResult() ports.SolveResult {
	return ports.SolveResult{
		Status:       ports.SolveStatus(r.Status),
		PrimalValues: r.PrimalValues,
		Message:      r.Message,
	}
}
