package solverclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

func TestParseLPModel(t *testing.T) {
	text := "Minimize\n" +
		" obj: xFT_9_0_4 + xPT_9_1\n" +
		"Subject To\n" +
		" cov_d1_h9: xFT_9_0_4 + xPT_9_1 >= 2\n" +
		" cap_pt: 80 xPT_9_1 + -20 xFT_9_0_4 <= 0\n" +
		" cov_d0_h3: 0 >= 1\n" +
		"Bounds\n" +
		" xFT_9_0_4 >= 0\n" +
		" xPT_9_1 >= 0\n" +
		"General\n" +
		" xFT_9_0_4\n" +
		" xPT_9_1\n" +
		"End\n"

	m, err := parseLPModel(text)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"xFT_9_0_4": 1, "xPT_9_1": 1}, m.objective)
	require.Len(t, m.rows, 3)

	cov := m.rows[0]
	assert.Equal(t, "cov_d1_h9", cov.label)
	assert.Equal(t, ">=", cov.op)
	assert.Equal(t, 2.0, cov.rhs)

	capRow := m.rows[1]
	assert.Equal(t, "<=", capRow.op)
	assert.Equal(t, 80.0, capRow.terms["xPT_9_1"])
	assert.Equal(t, -20.0, capRow.terms["xFT_9_0_4"])

	uncoverable := m.rows[2]
	assert.Empty(t, uncoverable.terms, "a lone constant term is not a variable")

	assert.Equal(t, []string{"xFT_9_0_4", "xPT_9_1"}, m.variables)
}

func solveText(t *testing.T, text string, vars []string) ports.SolveResult {
	t.Helper()
	s := &ReferenceSolver{}
	result, err := s.Solve(context.Background(), ports.LPModel{Text: text, Variables: vars})
	require.NoError(t, err)
	return result
}

func TestReferenceSolver_MeetsCoverage(t *testing.T) {
	text := "Minimize\n" +
		" obj: xFT_9_0_4 + xPT_9_1\n" +
		"Subject To\n" +
		" cov_d1_h9: xFT_9_0_4 + xPT_9_1 >= 2\n" +
		"End\n"

	result := solveText(t, text, []string{"xFT_9_0_4", "xPT_9_1"})

	assert.Equal(t, ports.SolveOptimal, result.Status)
	total := result.PrimalValues["xFT_9_0_4"] + result.PrimalValues["xPT_9_1"]
	assert.Equal(t, 2.0, total, "greedy must stop as soon as the row is met")
}

// A variable absent from the objective (a phase-2 part-timer) is preferred
// over a costed one covering the same row.
func TestReferenceSolver_PrefersFreeVariables(t *testing.T) {
	text := "Minimize\n" +
		" obj: xFT_9_0_4\n" +
		"Subject To\n" +
		" cov_d1_h9: xFT_9_0_4 + xPT_9_1 >= 3\n" +
		"End\n"

	result := solveText(t, text, []string{"xFT_9_0_4", "xPT_9_1"})

	assert.Equal(t, ports.SolveOptimal, result.Status)
	assert.Equal(t, 3.0, result.PrimalValues["xPT_9_1"])
	assert.Equal(t, 0.0, result.PrimalValues["xFT_9_0_4"])
}

// When a cap row blocks the only variable that could meet a coverage row,
// the model is reported infeasible rather than looping forever.
func TestReferenceSolver_CapBlockingCoverageIsInfeasible(t *testing.T) {
	text := "Minimize\n" +
		" obj: xFT_9_0_4 + xPT_9_1\n" +
		"Subject To\n" +
		" cov_d1_h9: xPT_9_1 >= 1\n" +
		" cap_pt: 80 xPT_9_1 + -20 xFT_9_0_4 <= 0\n" +
		"End\n"

	result := solveText(t, text, []string{"xFT_9_0_4", "xPT_9_1"})

	assert.Equal(t, ports.SolveInfeasible, result.Status)
	assert.NotEmpty(t, result.Message)
}

// An unconditionally violated "0 >= 1" row (emitted for a demand cell no
// template reaches) makes the whole model infeasible.
func TestReferenceSolver_UncoverableRowIsInfeasible(t *testing.T) {
	text := "Minimize\n" +
		" obj: xPT_9_1\n" +
		"Subject To\n" +
		" cov_d0_h3: 0 >= 1\n" +
		"End\n"

	result := solveText(t, text, []string{"xPT_9_1"})

	assert.Equal(t, ports.SolveInfeasible, result.Status)
}

// Deterministic tie-break: with equal score and footprint the
// reverse-lexicographically larger name wins, so repeated solves of the
// same model yield the same primal assignment.
func TestReferenceSolver_Deterministic(t *testing.T) {
	text := "Minimize\n" +
		" obj: xFT_10_0_3 + xWFT_10_3\n" +
		"Subject To\n" +
		" cov_d5_h10: xFT_10_0_3 + xWFT_10_3 >= 2\n" +
		"End\n"
	vars := []string{"xFT_10_0_3", "xWFT_10_3"}

	first := solveText(t, text, vars)
	second := solveText(t, text, vars)

	assert.Equal(t, first.PrimalValues, second.PrimalValues)
	assert.Equal(t, 2.0, first.PrimalValues["xWFT_10_3"])
	assert.Equal(t, 0.0, first.PrimalValues["xFT_10_0_3"])
}

func TestReferenceSolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &ReferenceSolver{}
	_, err := s.Solve(ctx, ports.LPModel{Text: "Minimize\nEnd\n"})
	assert.ErrorIs(t, err, context.Canceled)
}
