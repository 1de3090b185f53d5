package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

func TestTextPresenter_Present_Optimal(t *testing.T) {
	var coverage domain.CoverageMatrix
	coverage[domain.Monday][10] = 3

	result := domain.RosterResult{
		Status:       domain.StatusOptimal,
		TotalWorkers: 3,
		CountsByType: map[domain.WorkerType]int{domain.FT: 2, domain.PT: 1, domain.WFT: 0, domain.WPT: 0},
		Coverage:     coverage,
		SolveTimeMs:  42,
	}

	var buf bytes.Buffer
	require.NoError(t, TextPresenter{}.Present(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "status: optimal")
	assert.Contains(t, out, "total workers: 3")
	assert.Contains(t, out, "FT")
	assert.Contains(t, out, "Monday")
}

func TestTextPresenter_Present_NonOptimal(t *testing.T) {
	result := domain.TerminalResult(domain.StatusInfeasible, domain.RequiredMatrix{}, "phase1: infeasible", 7)

	var buf bytes.Buffer
	require.NoError(t, TextPresenter{}.Present(&buf, result))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "status: infeasible\n"))
	assert.Contains(t, out, "error: phase1: infeasible")
	assert.NotContains(t, out, "total workers")
}
