// Package solverclient hosts the host-side adapters around the
// ports.SolverClient boundary: a circuit-breaker decorator for any
// out-of-process backend, and a dependency-free in-process reference
// solver usable as the default backend and to drive tests without a
// child process.
package solverclient

import (
	"context"
	"math"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
)

// ReferenceSolver is a from-scratch greedy MIP heuristic: the built-in
// backend that ships alongside the pluggable ones, so the engine can solve
// without a child process and the test suite needs no external binary. A
// production deployment swaps it for a plugin wrapping a real MIP solver.
//
// It is a greedy set-cover approximation, not an exact solver: it
// satisfies every coverage row without violating any cap row, preferring
// free (phase-2 part-timer) variables over costed ones, but it does not
// discover solutions that require hiring a variable purely to relax a
// worker-mix ratio elsewhere with no coverage benefit of its own. The
// scenarios this repository tests against never require that.
type ReferenceSolver struct {
	// MaxIterations bounds the greedy loop against pathological inputs.
	// Zero means the default of 100000.
	MaxIterations int
}

const defaultMaxIterations = 100000

// Solve implements ports.SolverClient.
func (s *ReferenceSolver) Solve(ctx context.Context, model ports.LPModel) (ports.SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.SolveResult{}, err
	}

	parsed, err := parseLPModel(model.Text)
	if err != nil {
		return ports.SolveResult{Status: ports.SolveError, Message: err.Error()}, nil
	}

	x := make(map[string]float64, len(model.Variables))
	for _, v := range model.Variables {
		x[v] = 0
	}

	var coverage, caps []parsedRow
	for _, row := range parsed.rows {
		switch row.op {
		case ">=":
			coverage = append(coverage, row)
		case "<=":
			caps = append(caps, row)
		}
	}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	footprint := computeFootprint(coverage)

	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return ports.SolveResult{}, err
		}
		unmet := unmetRows(coverage, x)
		if len(unmet) == 0 {
			break
		}
		if iter >= maxIter {
			return ports.SolveResult{Status: ports.SolveError, Message: "reference solver: iteration limit exceeded"}, nil
		}

		v, ok := bestCandidate(unmet, parsed.objective, caps, x, footprint)
		if !ok {
			return ports.SolveResult{Status: ports.SolveInfeasible, Message: "reference solver: coverage cannot be met without violating a worker-mix cap"}, nil
		}
		x[v]++
	}

	return ports.SolveResult{Status: ports.SolveOptimal, PrimalValues: x}, nil
}

// unmetRows returns the coverage rows whose current lhs still falls short
// of rhs under x.
func unmetRows(coverage []parsedRow, x map[string]float64) []parsedRow {
	var out []parsedRow
	for _, row := range coverage {
		if evalLHS(row, x) < row.rhs-1e-9 {
			out = append(out, row)
		}
	}
	return out
}

func evalLHS(row parsedRow, x map[string]float64) float64 {
	var sum float64
	for name, coeff := range row.terms {
		sum += coeff * x[name]
	}
	return sum
}

// computeFootprint counts, per variable, how many coverage rows in the
// whole model it appears in with a positive coefficient: a static proxy
// for the template's weekly "footprint" (a part-timer's 4 productive hours
// necessarily touch fewer rows than a full-timer's 8).
func computeFootprint(coverage []parsedRow) map[string]int {
	footprint := make(map[string]int)
	for _, row := range coverage {
		for name, coeff := range row.terms {
			if coeff > 0 {
				footprint[name]++
			}
		}
	}
	return footprint
}

// candidate is one variable considered for the next greedy increment.
type candidate struct {
	name  string
	score float64
	fp    int
}

// beats orders candidates: higher gain-per-footprint first; among score
// ties, the broader template (larger footprint) so phase-1 headcount stays
// low; finally reverse-lexicographic name order for determinism.
func (c candidate) beats(o candidate) bool {
	if o.name == "" {
		return true
	}
	if c.score != o.score {
		return c.score > o.score
	}
	if c.fp != o.fp {
		return c.fp > o.fp
	}
	return c.name > o.name
}

// bestCandidate picks the variable to increment next. Zero-cost
// (objective-absent) variables are considered before costed ones, so a
// phase-2 solve maximizes part-timer share rather than just picking
// whichever variable happens to help first; within each class the beats
// ordering above decides. A variable whose increment would push any cap
// row over its bound is never selected.
func bestCandidate(unmet []parsedRow, objective map[string]float64, caps []parsedRow, x map[string]float64, footprint map[string]int) (string, bool) {
	gains := make(map[string]float64)
	for _, row := range unmet {
		remaining := row.rhs - evalLHS(row, x)
		for name, coeff := range row.terms {
			if coeff <= 0 {
				continue
			}
			gains[name] += math.Min(coeff, remaining)
		}
	}

	var bestFree, bestCosted candidate
	for name, gain := range gains {
		if gain <= 0 {
			continue
		}
		if capViolated(name, caps, x) {
			continue
		}
		fp := footprint[name]
		if fp <= 0 {
			fp = 1
		}
		c := candidate{name: name, score: gain / float64(fp), fp: fp}

		cost, costed := objective[name]
		if !costed || cost == 0 {
			if c.beats(bestFree) {
				bestFree = c
			}
			continue
		}
		if c.beats(bestCosted) {
			bestCosted = c
		}
	}
	if bestFree.name != "" {
		return bestFree.name, true
	}
	if bestCosted.name != "" {
		return bestCosted.name, true
	}
	return "", false
}

// capViolated reports whether incrementing name by one unit would push any
// cap row's lhs strictly past its rhs.
func capViolated(name string, caps []parsedRow, x map[string]float64) bool {
	for _, row := range caps {
		coeff, ok := row.terms[name]
		if !ok || coeff <= 0 {
			continue
		}
		if evalLHS(row, x)+coeff > row.rhs+1e-9 {
			return true
		}
	}
	return false
}
