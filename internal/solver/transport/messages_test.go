package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

func TestSolveRequestRoundTrip(t *testing.T) {
	model := ports.LPModel{Text: "Minimize\n obj: x\nEnd\n", Variables: []string{"x"}}
	req := toSolveRequest(model)
	assert.Equal(t, model, req.toLPModel())
}

func TestSolveResponseRoundTrip(t *testing.T) {
	result := ports.SolveResult{
		Status:       ports.SolveOptimal,
		PrimalValues: map[string]float64{"x": 3},
		Message:      "ok",
	}
	resp := toSolveResponse(result)
	assert.Equal(t, result, resp.toSolveResult())
}

func TestJSONCodecRoundTrip(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	req := &SolveRequest{Text: "Minimize\nEnd\n", Variables: []string{"a", "b"}}
	data, err := c.Marshal(req)
	assert.NoError(t, err)

	out := new(SolveRequest)
	assert.NoError(t, c.Unmarshal(data, out))
	assert.Equal(t, req, out)
}
