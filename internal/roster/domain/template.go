package domain

import (
	"fmt"
	"sort"
)

// FTStarts returns the admissible start hours for FT and WFT-length (9-hour)
// templates that are allowed to run overnight: a shift may not start or end
// during 00:00-04:59, so 16..19 are forbidden (they would end inside that
// window) leaving {5..15} U {20..23}.
func FTStarts() []int {
	return concat(seq(5, 15), seq(20, 23))
}

// PTStarts returns the admissible start hours for 4-hour PT templates:
// {5..20}, since a window starting at 20 ends exactly at 24:00.
func PTStarts() []int {
	return seq(5, 20)
}

// WFTStarts returns the admissible start hours for weekend-only 9-hour
// templates. No overnight start is allowed, to avoid a Sunday shift
// bleeding into the following Monday.
func WFTStarts() []int {
	return seq(5, 15)
}

// WPTStarts returns the admissible start hours for weekend-only 4-hour
// templates: identical reasoning to PTStarts.
func WPTStarts() []int {
	return seq(5, 20)
}

func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func concat(slices ...[]int) []int {
	var out []int
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}

// ShiftTemplate is the schedule class chosen by the optimizer: identical
// templates are interchangeable, and a solution assigns an integer worker
// count to each. Fields the type doesn't require are left at their zero
// value and must not be read (use the HasX predicates on Type).
type ShiftTemplate struct {
	Type WorkerType
	// Start is the raw start hour, 0..23.
	Start int
	// DayOff is meaningful only when Type.HasDayOff().
	DayOff Day
	// BreakOffset is meaningful only when Type.HasBreak().
	BreakOffset int
}

// Name renders the structured variable-name scheme the solver contract
// uses: x{TYPE}_{start}_{dayOff?}_{break?}, where optional components
// appear exactly when the template's type requires them.
func (t ShiftTemplate) Name() string {
	name := fmt.Sprintf("x%s_%d", t.Type, t.Start)
	if t.Type.HasDayOff() {
		name += fmt.Sprintf("_%d", int(t.DayOff))
	}
	if t.Type.HasBreak() {
		name += fmt.Sprintf("_%d", t.BreakOffset)
	}
	return name
}

// ShiftEnd is Start + the type's duration, possibly exceeding 24; display
// formatting of values >= 24 is the presentation layer's concern.
func (t ShiftTemplate) ShiftEnd() int {
	return t.Start + t.Type.ShiftDuration()
}

// Validate checks the structural invariants on a template: legal start
// hour for the type, break offset within the admissible set (9-hour types
// only), and day_off within the allowed set (weekday types only).
func (t ShiftTemplate) Validate(cfg Config) error {
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: unknown worker type %v", ErrInvalidTemplate, t.Type)
	}
	var starts []int
	switch t.Type {
	case FT:
		starts = FTStarts()
	case PT:
		starts = PTStarts()
	case WFT:
		starts = WFTStarts()
	case WPT:
		starts = WPTStarts()
	}
	if !contains(starts, t.Start) {
		return fmt.Errorf("%w: start hour %d illegal for %v", ErrInvalidTemplate, t.Start, t.Type)
	}
	if t.Type.HasBreak() {
		if !contains(cfg.EffectiveBreakOffsets(), t.BreakOffset) {
			return fmt.Errorf("%w: break offset %d not in admissible set", ErrInvalidTemplate, t.BreakOffset)
		}
	}
	if t.Type.HasDayOff() {
		found := false
		for _, d := range cfg.DayOffSet() {
			if d == t.DayOff {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: day_off %v not permitted by config", ErrInvalidTemplate, t.DayOff)
		}
	}
	return nil
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// rawProductiveHours returns raw hours (possibly >= 24, meaning wrap) for a
// 9-hour template, excluding the break offset:
// raw_hours(s) = [s..s+8], productive_raw(s,b) = raw_hours(s) \ {s+b}.
func rawProductiveHours(start, breakOffset int) []int {
	out := make([]int, 0, 8)
	for i := 0; i <= 8; i++ {
		if i == breakOffset {
			continue
		}
		out = append(out, start+i)
	}
	return out
}

// rawHoursFull returns all 9 raw hours of a 9-hour template's span with no
// break exclusion, for the peak-protected-smearing coverage model, where
// the break is not fixed to one slot.
func rawHoursFull(start int) []int {
	out := make([]int, 0, 9)
	for i := 0; i <= 8; i++ {
		out = append(out, start+i)
	}
	return out
}

// partTimeHours returns the 4 contiguous raw hours of a PT/WPT template.
// These never wrap: the latest admissible start is 20, and 20+3=23.
func partTimeHours(start int) []int {
	return []int{start, start + 1, start + 2, start + 3}
}

// DayHour addresses a single coverage-matrix cell.
type DayHour struct {
	Day  Day
	Hour int
}

// ProductiveSlots enumerates every (day, hour) cell this template's workers
// are productive in across the week, for the discrete-break coverage model.
// The Variable Pruner's activity check and the Model Builder's coverage
// rows both use it, so those two stages agree about what a template
// covers. The Roster Reifier derives coverage from worker records through
// BuildCoverage, which applies the same day-off and wrap rules.
//
// Day-off discipline: an overnight FT template's wrap hours are dropped,
// not attributed, whenever the destination day is the worker's day off. A
// worker with the day off on p never contributes to C on day p, including
// via the tail of the shift that started on p-1.
func (t ShiftTemplate) ProductiveSlots() []DayHour {
	switch t.Type {
	case FT:
		return ftSlots(t)
	case PT:
		return weekdaySlots(t, partTimeHours(t.Start))
	case WFT:
		return weekendSlots(t, rawProductiveHours(t.Start, t.BreakOffset))
	case WPT:
		return weekendSlots(t, partTimeHours(t.Start))
	default:
		return nil
	}
}

func ftSlots(t ShiftTemplate) []DayHour {
	return ftSlotsWithHours(t, rawProductiveHours(t.Start, t.BreakOffset))
}

// ftSlotsWithHours is ftSlots generalized over the raw hour list, so the
// peak-protected-smearing coverage model (which has no fixed break hour to
// exclude) can reuse the same day-off/wrap-drop bookkeeping.
func ftSlotsWithHours(t ShiftTemplate, hours []int) []DayHour {
	var out []DayHour
	for d := Day(0); d < DaysInWeek; d++ {
		if d == t.DayOff {
			continue
		}
		for _, raw := range hours {
			if !IsWrapHour(raw) {
				out = append(out, DayHour{Day: d, Hour: raw})
				continue
			}
			next := d.Next()
			if next == t.DayOff {
				continue
			}
			out = append(out, DayHour{Day: next, Hour: NormalizeHour(raw)})
		}
	}
	return out
}

func weekdaySlots(t ShiftTemplate, hours []int) []DayHour {
	var out []DayHour
	for d := Day(0); d < DaysInWeek; d++ {
		if d == t.DayOff {
			continue
		}
		for _, h := range hours {
			out = append(out, DayHour{Day: d, Hour: NormalizeHour(h)})
		}
	}
	return out
}

func weekendSlots(t ShiftTemplate, hours []int) []DayHour {
	var out []DayHour
	for _, d := range []Day{Saturday, Sunday} {
		for _, h := range hours {
			out = append(out, DayHour{Day: d, Hour: NormalizeHour(h)})
		}
	}
	return out
}

// ProductiveSlotsSmeared returns every (day, hour) slot in the template's
// full shift span with no break hour excluded, for use by the
// peak-protected-smearing coverage model: under smearing a 9-hour
// template's break is not fixed to one slot, so every hour of the span
// carries some (possibly reduced) coverage coefficient rather than zero.
// PT/WPT have no break to smear and behave identically to ProductiveSlots.
func (t ShiftTemplate) ProductiveSlotsSmeared() []DayHour {
	switch t.Type {
	case FT:
		return ftSlotsWithHours(t, rawHoursFull(t.Start))
	case WFT:
		return weekendSlots(t, rawHoursFull(t.Start))
	default:
		return t.ProductiveSlots()
	}
}

// smearCandidate is one raw-hour cell considered for a single shift-day
// occurrence's peak ranking.
type smearCandidate struct {
	offset int
	day    Day
	hour   int
	demand int
}

// SmearedCoverage returns the peak-protected-smearing coefficient for every
// (day,hour) cell this template touches across the week. Each shift-day
// occurrence independently ranks its window hours by demand
// (ties broken by smaller offset within the window, i.e. the candidate
// closer to the shift start); the top 3 carry coefficient 1.0, the
// remaining carry 5/6. PT/WPT have no break to smear and always carry
// coefficient 1.
func (t ShiftTemplate) SmearedCoverage(demand DemandMatrix) map[DayHour]float64 {
	coeffs := make(map[DayHour]float64)
	switch t.Type {
	case PT, WPT:
		for _, slot := range t.ProductiveSlots() {
			coeffs[slot] = 1.0
		}
	case FT:
		for d := Day(0); d < DaysInWeek; d++ {
			if d == t.DayOff {
				continue
			}
			rankSmearOccurrence(t, d, demand, coeffs)
		}
	case WFT:
		for _, d := range []Day{Saturday, Sunday} {
			rankSmearOccurrence(t, d, demand, coeffs)
		}
	}
	return coeffs
}

func rankSmearOccurrence(t ShiftTemplate, shiftDay Day, demand DemandMatrix, coeffs map[DayHour]float64) {
	var cands []smearCandidate
	for i, raw := range rawHoursFull(t.Start) {
		var destDay Day
		var destHour int
		if !IsWrapHour(raw) {
			destDay, destHour = shiftDay, raw
		} else {
			next := shiftDay.Next()
			if t.Type.HasDayOff() && next == t.DayOff {
				continue
			}
			destDay, destHour = next, NormalizeHour(raw)
		}
		cands = append(cands, smearCandidate{offset: i, day: destDay, hour: destHour, demand: demand[destDay][destHour]})
	}
	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].demand != cands[b].demand {
			return cands[a].demand > cands[b].demand
		}
		return cands[a].offset < cands[b].offset
	})
	for idx, c := range cands {
		coeff := 5.0 / 6.0
		if idx < 3 {
			coeff = 1.0
		}
		coeffs[DayHour{Day: c.day, Hour: c.hour}] = coeff
	}
}

// GenerateTemplates produces the full pre-pruning universe of templates for
// the four worker types, from the static start-hour constants, cfg's
// break-offset set, and cfg's day-off set. Worker types excluded entirely
// by a zero-valued cap are the pruner's concern, not this one's:
// GenerateTemplates always produces the complete universe.
func GenerateTemplates(cfg Config) (ft, pt, wft, wpt []ShiftTemplate) {
	dayOffs := cfg.DayOffSet()
	breaks := cfg.EffectiveBreakOffsets()

	for _, s := range FTStarts() {
		for _, d := range dayOffs {
			for _, b := range breaks {
				ft = append(ft, ShiftTemplate{Type: FT, Start: s, DayOff: d, BreakOffset: b})
			}
		}
	}
	for _, s := range PTStarts() {
		for _, d := range dayOffs {
			pt = append(pt, ShiftTemplate{Type: PT, Start: s, DayOff: d})
		}
	}
	for _, s := range WFTStarts() {
		for _, b := range breaks {
			wft = append(wft, ShiftTemplate{Type: WFT, Start: s, BreakOffset: b})
		}
	}
	for _, s := range WPTStarts() {
		wpt = append(wpt, ShiftTemplate{Type: WPT, Start: s})
	}
	return ft, pt, wft, wpt
}
