package eventbus

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

func TestSolveRequestedEventRoundTrip(t *testing.T) {
	var demand domain.DemandMatrix
	demand[domain.Monday][10] = 5

	event := SolveRequestedEvent{
		RunID:       "run-1",
		RequestedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Demand:      demand,
		Config: FromDomainConfig(domain.Config{
			ProductivityRate: 12,
			PTCapPct:         20,
			WeekenderCapPct:  30,
		}),
	}

	body, err := marshalEvent(event)
	require.NoError(t, err)

	var decoded SolveRequestedEvent
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, event.RunID, decoded.RunID)
	assert.Equal(t, 5, decoded.Demand[domain.Monday][10])
	assert.Equal(t, 12, decoded.Config.ToDomain().ProductivityRate)
}

func TestSolvedEventRoundTrip(t *testing.T) {
	event := SolvedEvent{RunID: "run-1", Status: "optimal", TotalWorkers: 7, SolveTimeMs: 120}

	body, err := marshalEvent(event)
	require.NoError(t, err)

	var decoded SolvedEvent
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestProgressEventRoundTrip(t *testing.T) {
	event := ProgressEvent{RunID: "run-1", Stage: "phase1"}

	body, err := marshalEvent(event)
	require.NoError(t, err)

	var decoded ProgressEvent
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, event, decoded)
}
