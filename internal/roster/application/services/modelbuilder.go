package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// Phase selects which of the two solver passes the Model Builder
// emits text for.
type Phase int

const (
	// Phase1 minimizes total headcount over every active template.
	Phase1 Phase = iota
	// Phase2 minimizes full-timer headcount at a fixed total-headcount cap,
	// letting part-timer counts float free to maximize their share.
	Phase2
)

// BuildModel emits the MIP text for one phase: Minimize, Subject
// To, Bounds, General, End, in that order. headcountCap is only consulted
// for Phase2 (Σ x_T ≤ N*).
func BuildModel(cfg domain.Config, universe TemplateUniverse, demand domain.DemandMatrix, required domain.RequiredMatrix, phase Phase, headcountCap int) ports.LPModel {
	all := universe.All()
	names := make([]string, 0, len(all))
	for _, t := range all {
		names = append(names, t.Name())
	}

	var b strings.Builder
	b.WriteString("Minimize\n")
	writeObjective(&b, universe, phase)

	b.WriteString("Subject To\n")
	writeCoverageRows(&b, cfg, all, demand, required)
	writeCapRows(&b, cfg, universe)
	if phase == Phase2 {
		writeHeadcountCapRow(&b, all, headcountCap)
	}

	b.WriteString("Bounds\n")
	for _, name := range names {
		fmt.Fprintf(&b, " %s >= 0\n", name)
	}

	b.WriteString("General\n")
	for _, name := range names {
		fmt.Fprintf(&b, " %s\n", name)
	}

	b.WriteString("End\n")

	return ports.LPModel{Text: b.String(), Variables: names}
}

// writeObjective emits the phase's objective row. Coefficients are uniform
// integers (all 1), a hard constraint of the core because at least one
// known reference backend corrupts its heap on non-uniform objective
// coefficients.
func writeObjective(b *strings.Builder, universe TemplateUniverse, phase Phase) {
	var terms []string
	switch phase {
	case Phase1:
		for _, t := range universe.All() {
			terms = append(terms, t.Name())
		}
	case Phase2:
		for _, t := range concatTemplates(universe.FT, universe.WFT) {
			terms = append(terms, t.Name())
		}
	}
	if len(terms) == 0 {
		b.WriteString(" obj: 0\n")
		return
	}
	fmt.Fprintf(b, " obj: %s\n", strings.Join(terms, " + "))
}

// writeCoverageRows emits, for every (d,h) with D[d][h] > 0, the row
// Σ a_T·x_T >= R[d][h], using whichever coverage model cfg selects.
func writeCoverageRows(b *strings.Builder, cfg domain.Config, templates []domain.ShiftTemplate, demand domain.DemandMatrix, required domain.RequiredMatrix) {
	smeared := cfg.CoverageModel == domain.PeakProtectedSmearing

	for day := 0; day < domain.DaysInWeek; day++ {
		for hour := 0; hour < domain.HoursInDay; hour++ {
			if demand[day][hour] <= 0 {
				continue
			}
			var terms []string
			for _, t := range templates {
				coeff, covers := coverageCoefficient(t, domain.Day(day), hour, smeared, demand)
				if !covers {
					continue
				}
				terms = append(terms, formatTerm(coeff, t.Name()))
			}
			if len(terms) == 0 {
				// No active template reaches this cell: the row would be
				// unconditionally violated, so the solver reports
				// infeasible. Emitting "0 >= R" keeps the model well
				// formed instead of silently dropping the constraint.
				fmt.Fprintf(b, " cov_d%d_h%d: 0 >= %d\n", day, hour, required[day][hour])
				continue
			}
			fmt.Fprintf(b, " cov_d%d_h%d: %s >= %d\n", day, hour, strings.Join(terms, " + "), required[day][hour])
		}
	}
}

func coverageCoefficient(t domain.ShiftTemplate, day domain.Day, hour int, smeared bool, demand domain.DemandMatrix) (float64, bool) {
	if smeared {
		coeffs := t.SmearedCoverage(demand)
		c, ok := coeffs[domain.DayHour{Day: day, Hour: hour}]
		return c, ok
	}
	for _, slot := range t.ProductiveSlots() {
		if slot.Day == day && slot.Hour == hour {
			return 1, true
		}
	}
	return 0, false
}

func formatTerm(coeff float64, name string) string {
	if coeff == 1 {
		return name
	}
	return fmt.Sprintf("%.10g %s", coeff, name)
}

// writeCapRows emits the worker-mix cap rows, scaled x100 to
// keep coefficients integer. Caps binding only strictly between 0 and 100;
// cap = 0 is handled earlier by excluding the variable type from the model
// entirely (services.BuildUniverse), so this function never emits a
// single-variable "= 0" row.
func writeCapRows(b *strings.Builder, cfg domain.Config, universe TemplateUniverse) {
	capPT := domain.RoundPercentHalfUp(float64(cfg.PTCapPct))
	capWK := domain.RoundPercentHalfUp(float64(cfg.WeekenderCapPct))

	if capPT > 0 && capPT < 100 {
		writeCapRow(b, "cap_pt", capPT, concatTemplates(universe.PT, universe.WPT), concatTemplates(universe.FT, universe.WFT))
	}
	if capWK > 0 && capWK < 100 {
		writeCapRow(b, "cap_wk", capWK, concatTemplates(universe.WFT, universe.WPT), concatTemplates(universe.FT, universe.PT))
	}
}

func concatTemplates(a, b []domain.ShiftTemplate) []domain.ShiftTemplate {
	out := make([]domain.ShiftTemplate, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// writeCapRow emits (100-cap)*Σcapped - cap*Σuncapped <= 0.
func writeCapRow(b *strings.Builder, label string, cap int, capped, uncapped []domain.ShiftTemplate) {
	var terms []string
	for _, t := range capped {
		terms = append(terms, formatTerm(float64(100-cap), t.Name()))
	}
	for _, t := range uncapped {
		terms = append(terms, formatTerm(float64(-cap), t.Name()))
	}
	if len(terms) == 0 {
		return
	}
	fmt.Fprintf(b, " %s: %s <= 0\n", label, strings.Join(terms, " + "))
}

// writeHeadcountCapRow emits phase-2's Σ x_T <= N*.
func writeHeadcountCapRow(b *strings.Builder, all []domain.ShiftTemplate, cap int) {
	if len(all) == 0 {
		return
	}
	names := make([]string, 0, len(all))
	for _, t := range all {
		names = append(names, t.Name())
	}
	sort.Strings(names)
	fmt.Fprintf(b, " phase2_cap: %s <= %d\n", strings.Join(names, " + "), cap)
}
