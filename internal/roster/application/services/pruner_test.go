package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

func demandRows(set func(rows [][]int)) domain.DemandMatrix {
	rows := make([][]int, domain.DaysInWeek)
	for d := range rows {
		rows[d] = make([]int, domain.HoursInDay)
	}
	set(rows)
	d, err := domain.NewDemandMatrix(rows)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero demand prunes every template out of the universe.
func TestBuildUniverse_ZeroDemandPrunesEverything(t *testing.T) {
	d := demandRows(func(rows [][]int) {})
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}

	u := BuildUniverse(cfg, d)

	assert.Empty(t, u.FT)
	assert.Empty(t, u.PT)
	assert.Empty(t, u.WFT)
	assert.Empty(t, u.WPT)
	assert.Empty(t, u.All())
}

// cap_pt = 0 excludes PT and WPT from the universe entirely, not just from
// the objective/constraints.
func TestBuildUniverse_PTCapZeroExcludesPTAndWPT(t *testing.T) {
	d := demandRows(func(rows [][]int) {
		for day := domain.Monday; day <= domain.Friday; day++ {
			for h := 9; h <= 17; h++ {
				rows[day][h] = 24
			}
		}
		rows[domain.Saturday][10] = 60
		rows[domain.Sunday][10] = 60
	})
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 0, WeekenderCapPct: 30}

	u := BuildUniverse(cfg, d)

	assert.Empty(t, u.PT)
	assert.Empty(t, u.WPT)
	assert.NotEmpty(t, u.FT)
}

// cap_wk = 0 excludes WFT and WPT.
func TestBuildUniverse_WeekenderCapZeroExcludesWFTAndWPT(t *testing.T) {
	d := demandRows(func(rows [][]int) {
		rows[domain.Saturday][10] = 60
		rows[domain.Sunday][10] = 60
	})
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 0}

	u := BuildUniverse(cfg, d)

	assert.Empty(t, u.WFT)
	assert.Empty(t, u.WPT)
}

// cap_pt = 0 alone, without cap_wk = 0, still excludes WPT: it belongs to
// both the part-timer and the weekender mix.
func TestBuildUniverse_PTCapZeroAloneAlsoExcludesWPT(t *testing.T) {
	d := demandRows(func(rows [][]int) {
		rows[domain.Saturday][10] = 60
		rows[domain.Sunday][10] = 60
	})
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 0, WeekenderCapPct: 100}

	u := BuildUniverse(cfg, d)

	assert.Empty(t, u.WPT)
	assert.NotEmpty(t, u.WFT)
}

// A template touching only zero-demand cells is pruned; a template touching
// at least one positive-demand cell survives.
func TestBuildUniverse_OnlyTemplatesTouchingDemandSurvive(t *testing.T) {
	d := demandRows(func(rows [][]int) { rows[domain.Monday][10] = 12 })
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}

	u := BuildUniverse(cfg, d)

	for _, tmpl := range u.All() {
		covered := false
		for _, slot := range tmpl.ProductiveSlots() {
			if d[slot.Day][slot.Hour] > 0 {
				covered = true
				break
			}
		}
		assert.True(t, covered, "surviving template %s must cover at least one positive-demand cell", tmpl.Name())
	}
	assert.NotEmpty(t, u.All())
}

// Under peak-protected smearing, the per-break-offset dimension collapses:
// at most one template per (type, start, day_off) survives.
func TestBuildUniverse_SmearingCollapsesBreakOffsets(t *testing.T) {
	d := demandRows(func(rows [][]int) {
		for day := domain.Monday; day <= domain.Friday; day++ {
			for h := 9; h <= 17; h++ {
				rows[day][h] = 24
			}
		}
	})
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30, CoverageModel: domain.PeakProtectedSmearing}

	u := BuildUniverse(cfg, d)

	seen := make(map[string]bool)
	for _, tmpl := range u.FT {
		key := tmpl.Name()
		assert.False(t, seen[key], "duplicate template %s under smearing collapse", key)
		seen[key] = true
		assert.Equal(t, 0, tmpl.BreakOffset)
	}
}
