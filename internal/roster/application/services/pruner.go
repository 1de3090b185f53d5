// Package services holds the pure, I/O-free transformation stages of the
// roster engine: the Variable Pruner, Model Builder and Roster Reifier.
// None of these types know about a solver process, a logger, or a cache;
// they operate purely over domain types.
package services

import "github.com/shiftforge/rosterengine/internal/roster/domain"

// TemplateUniverse is the four worker-type-partitioned sets of templates
// produced by the catalogue/pruner stages, threaded through the Model
// Builder and Roster Reifier so all three stages see the same variable set.
type TemplateUniverse struct {
	FT, PT, WFT, WPT []domain.ShiftTemplate
}

// All returns every template across all four types, in type order.
func (u TemplateUniverse) All() []domain.ShiftTemplate {
	out := make([]domain.ShiftTemplate, 0, len(u.FT)+len(u.PT)+len(u.WFT)+len(u.WPT))
	out = append(out, u.FT...)
	out = append(out, u.PT...)
	out = append(out, u.WFT...)
	out = append(out, u.WPT...)
	return out
}

// BuildUniverse runs the Shift Catalogue and Variable Pruner stages in one
// pass: it generates the full template universe, applies the cap-zero
// exclusion policy (excluding a variable type from the entire model rather
// than fixing it to zero via a constraint row), and then keeps only
// templates that are *active*: able to contribute to at least one slot of
// positive demand.
func BuildUniverse(cfg domain.Config, demand domain.DemandMatrix) TemplateUniverse {
	ft, pt, wft, wpt := domain.GenerateTemplates(cfg)

	excludePT := cfg.PTCapPct == 0
	excludeWK := cfg.WeekenderCapPct == 0
	excludeWPT := excludePT || excludeWK

	if excludePT {
		pt = nil
	}
	if excludeWK {
		wft = nil
	}
	if excludeWPT {
		wpt = nil
	}

	smeared := cfg.CoverageModel == domain.PeakProtectedSmearing
	if smeared {
		// Under smearing the break is not pinned to a slot, so the
		// per-break-offset dimension is redundant.
		ft = collapseBreakOffsets(ft)
		wft = collapseBreakOffsets(wft)
	}

	return TemplateUniverse{
		FT:  pruneActive(ft, demand, smeared),
		PT:  pruneActive(pt, demand, smeared),
		WFT: pruneActive(wft, demand, smeared),
		WPT: pruneActive(wpt, demand, smeared),
	}
}

// collapseBreakOffsets keeps exactly one representative template per
// (start, day_off) pair, discarding the redundant break-offset variants.
func collapseBreakOffsets(templates []domain.ShiftTemplate) []domain.ShiftTemplate {
	type key struct {
		start, dayOff int
	}
	seen := make(map[key]bool, len(templates))
	var out []domain.ShiftTemplate
	for _, t := range templates {
		k := key{t.Start, int(t.DayOff)}
		if seen[k] {
			continue
		}
		seen[k] = true
		t.BreakOffset = 0
		out = append(out, t)
	}
	return out
}

// pruneActive keeps only templates with at least one productive slot
// landing on a cell of positive demand. ShiftTemplate.ProductiveSlots (or,
// under smearing, ProductiveSlotsSmeared) defines "what a template covers,"
// the same functions the Model Builder uses for its coverage rows, so
// pruning agrees with the model it feeds.
func pruneActive(templates []domain.ShiftTemplate, demand domain.DemandMatrix, smeared bool) []domain.ShiftTemplate {
	var active []domain.ShiftTemplate
	for _, t := range templates {
		if isActive(t, demand, smeared) {
			active = append(active, t)
		}
	}
	return active
}

func isActive(t domain.ShiftTemplate, demand domain.DemandMatrix, smeared bool) bool {
	slots := t.ProductiveSlots()
	if smeared {
		slots = t.ProductiveSlotsSmeared()
	}
	for _, slot := range slots {
		if demand[slot.Day][slot.Hour] > 0 {
			return true
		}
	}
	return false
}
