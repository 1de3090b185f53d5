package solverclient

import (
	"fmt"
	"strconv"
	"strings"
)

// parsedModel is the structured form of an LP-text model, recovered by
// parsing the text ModelBuilder emitted. inprocess.ReferenceSolver parses
// its own LP text rather than consuming a structured type directly: the
// contract between Model Builder and Solver Driver is genuinely text-in,
// primal-values-out, treating the solver as an external black box even
// when the backend happens to run in the same process.
type parsedModel struct {
	objective map[string]float64
	rows      []parsedRow
	variables []string
}

type parsedRow struct {
	label string
	terms map[string]float64
	op    string // ">=" or "<="
	rhs   float64
}

// parseLPModel parses the Minimize/Subject To/Bounds/General/End text this
// repository's Model Builder emits. It is deliberately narrow: it only
// needs to round-trip exactly what writeObjective/writeCoverageRows/
// writeCapRows/writeHeadcountCapRow in
// internal/roster/application/services/modelbuilder.go produce.
func parseLPModel(text string) (parsedModel, error) {
	var m parsedModel
	section := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch trimmed {
		case "Minimize", "Subject To", "Bounds", "General", "End":
			section = trimmed
			continue
		}
		switch section {
		case "Minimize":
			terms, _, err := parseTerms(strings.TrimPrefix(trimmed, "obj:"))
			if err != nil {
				return m, fmt.Errorf("solverclient: parsing objective: %w", err)
			}
			m.objective = terms
		case "Subject To":
			row, err := parseRow(trimmed)
			if err != nil {
				return m, fmt.Errorf("solverclient: parsing row %q: %w", trimmed, err)
			}
			m.rows = append(m.rows, row)
		case "General":
			m.variables = append(m.variables, trimmed)
		}
	}
	return m, nil
}

func parseRow(line string) (parsedRow, error) {
	labelSplit := strings.SplitN(line, ":", 2)
	if len(labelSplit) != 2 {
		return parsedRow{}, fmt.Errorf("missing label separator")
	}
	label := strings.TrimSpace(labelSplit[0])
	rest := labelSplit[1]

	op := ">="
	opIdx := strings.Index(rest, ">=")
	if opIdx < 0 {
		op = "<="
		opIdx = strings.Index(rest, "<=")
	}
	if opIdx < 0 {
		return parsedRow{}, fmt.Errorf("missing comparison operator")
	}
	lhs := rest[:opIdx]
	rhsStr := strings.TrimSpace(rest[opIdx+2:])
	rhs, err := strconv.ParseFloat(rhsStr, 64)
	if err != nil {
		return parsedRow{}, fmt.Errorf("parsing rhs %q: %w", rhsStr, err)
	}

	terms, _, err := parseTerms(lhs)
	if err != nil {
		return parsedRow{}, err
	}
	return parsedRow{label: label, terms: terms, op: op, rhs: rhs}, nil
}

// parseTerms splits a "coeff name + coeff name + ..." expression into a
// variable->coefficient map. A lone numeric term with no variable name
// (the Model Builder's "0 >= R" placeholder for a demand cell no active
// template reaches) contributes to the returned constant instead.
func parseTerms(expr string) (map[string]float64, float64, error) {
	terms := make(map[string]float64)
	var constant float64
	for _, raw := range strings.Split(expr, "+") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		fields := strings.Fields(tok)
		switch len(fields) {
		case 1:
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				constant += v
				continue
			}
			terms[fields[0]] += 1
		case 2:
			coeff, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, 0, fmt.Errorf("parsing coefficient %q: %w", fields[0], err)
			}
			terms[fields[1]] += coeff
		default:
			return nil, 0, fmt.Errorf("unparseable term %q", tok)
		}
	}
	return terms, constant, nil
}
