package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

func smallUniverse() TemplateUniverse {
	return TemplateUniverse{
		FT:  []domain.ShiftTemplate{{Type: domain.FT, Start: 9, DayOff: domain.Monday, BreakOffset: 4}},
		PT:  []domain.ShiftTemplate{{Type: domain.PT, Start: 9, DayOff: domain.Monday}},
		WFT: []domain.ShiftTemplate{{Type: domain.WFT, Start: 9, BreakOffset: 4}},
		WPT: []domain.ShiftTemplate{{Type: domain.WPT, Start: 9}},
	}
}

// Phase 1's objective is every active template with coefficient 1.
func TestBuildModel_Phase1ObjectiveIncludesEveryTemplate(t *testing.T) {
	u := smallUniverse()
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	d := demandRows(func(rows [][]int) { rows[domain.Tuesday][9] = 12 })
	r := domain.DeriveRequired(d, cfg.ProductivityRate)

	model := BuildModel(cfg, u, d, r, Phase1, 0)

	objLine := objectiveLine(t, model.Text)
	for _, tmpl := range u.All() {
		assert.Contains(t, objLine, tmpl.Name())
	}
	assert.NotContains(t, objLine, "2 x", "phase 1 coefficients must all be 1 (uniform-integer contract)")
}

// Phase 2's objective is FT+WFT only; PT/WPT are free (absent).
func TestBuildModel_Phase2ObjectiveExcludesPartTimers(t *testing.T) {
	u := smallUniverse()
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	d := demandRows(func(rows [][]int) { rows[domain.Tuesday][9] = 12 })
	r := domain.DeriveRequired(d, cfg.ProductivityRate)

	model := BuildModel(cfg, u, d, r, Phase2, 5)

	objLine := objectiveLine(t, model.Text)
	assert.Contains(t, objLine, u.FT[0].Name())
	assert.Contains(t, objLine, u.WFT[0].Name())
	assert.NotContains(t, objLine, u.PT[0].Name())
	assert.NotContains(t, objLine, u.WPT[0].Name())
}

// Phase 2 emits a single Σx_T <= N* row; phase 1 emits none.
func TestBuildModel_Phase2EmitsHeadcountCapRow(t *testing.T) {
	u := smallUniverse()
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	d := demandRows(func(rows [][]int) { rows[domain.Tuesday][9] = 12 })
	r := domain.DeriveRequired(d, cfg.ProductivityRate)

	phase1 := BuildModel(cfg, u, d, r, Phase1, 0)
	phase2 := BuildModel(cfg, u, d, r, Phase2, 5)

	assert.NotContains(t, phase1.Text, "phase2_cap")
	assert.Contains(t, phase2.Text, "phase2_cap:")
	assert.Contains(t, phase2.Text, "<= 5")
}

// A cap=0 variable type is excluded from the model outright: no
// single-variable "= 0" fix row ever appears, because BuildUniverse has
// already dropped those templates before BuildModel ever sees them.
func TestBuildModel_CapZeroTemplatesNeverAppearInCapRows(t *testing.T) {
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 0, WeekenderCapPct: 30}
	d := demandRows(func(rows [][]int) {
		for day := domain.Monday; day <= domain.Friday; day++ {
			for h := 9; h <= 17; h++ {
				rows[day][h] = 24
			}
		}
	})
	r := domain.DeriveRequired(d, cfg.ProductivityRate)
	u := BuildUniverse(cfg, d)
	require.Empty(t, u.PT)
	require.Empty(t, u.WPT)

	model := BuildModel(cfg, u, d, r, Phase1, 0)

	assert.NotContains(t, model.Text, "xPT_")
	assert.NotContains(t, model.Text, "xWPT_")
	assert.NotContains(t, model.Text, "cap_pt:", "cap_pt in (0,100) only; at 0 the row is omitted entirely")
}

// Cap rows scale by x100 to keep coefficients integer, e.g. a 20%
// part-timer cap emits coefficients 80 and -20, never 0.8/0.2.
func TestBuildModel_CapRowsUseIntegerX100Scaling(t *testing.T) {
	u := smallUniverse()
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	d := demandRows(func(rows [][]int) { rows[domain.Tuesday][9] = 12 })
	r := domain.DeriveRequired(d, cfg.ProductivityRate)

	model := BuildModel(cfg, u, d, r, Phase1, 0)

	capPTLine := findLine(t, model.Text, "cap_pt:")
	assert.Contains(t, capPTLine, "80 ")
	assert.Contains(t, capPTLine, "-20 ")
	assert.NotContains(t, capPTLine, ".")

	capWKLine := findLine(t, model.Text, "cap_wk:")
	assert.Contains(t, capWKLine, "70 ")
	assert.Contains(t, capWKLine, "-30 ")
	assert.NotContains(t, capWKLine, ".")
}

// A coverage row for a cell with zero active coverage is still emitted
// (as "0 >= R") rather than silently dropped, so the solver reports
// infeasible instead of the model quietly under-constraining.
func TestBuildModel_UncoverableCellEmitsZeroRow(t *testing.T) {
	u := TemplateUniverse{} // no templates active at all
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	d := demandRows(func(rows [][]int) { rows[domain.Monday][10] = 12 })
	r := domain.DeriveRequired(d, cfg.ProductivityRate)

	model := BuildModel(cfg, u, d, r, Phase1, 0)

	assert.Contains(t, model.Text, "cov_d0_h10: 0 >= 1")
}

// Every variable declared gets a "General" integrality line and a ">= 0"
// bound.
func TestBuildModel_BoundsAndGeneralCoverEveryVariable(t *testing.T) {
	u := smallUniverse()
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	d := demandRows(func(rows [][]int) { rows[domain.Tuesday][9] = 12 })
	r := domain.DeriveRequired(d, cfg.ProductivityRate)

	model := BuildModel(cfg, u, d, r, Phase1, 0)

	for _, tmpl := range u.All() {
		assert.Contains(t, model.Text, tmpl.Name()+" >= 0")
	}
	assert.Contains(t, model.Text, "General\n")
	assert.True(t, strings.Index(model.Text, "Bounds") < strings.Index(model.Text, "General"))
	assert.True(t, strings.Index(model.Text, "General") < strings.Index(model.Text, "End"))
}

func objectiveLine(t *testing.T, text string) string {
	t.Helper()
	return findLine(t, text, "obj:")
}

func findLine(t *testing.T, text, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, prefix) {
			return line
		}
	}
	require.Fail(t, "no line containing %q found in model text", prefix)
	return ""
}
