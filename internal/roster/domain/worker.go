package domain

// WorkerRecord is a single reified output worker: a concrete instance of a
// ShiftTemplate, given a sequential id.
type WorkerRecord struct {
	// ID is the 1-based position in the output list.
	ID         int
	Type       WorkerType
	ShiftStart int
	// ShiftEnd is ShiftStart + duration, possibly >= 24.
	ShiftEnd int
	// DayOff is nil for WFT/WPT.
	DayOff *Day
	// ProductiveHours are clock-hours mod 24, excluding any break hour.
	ProductiveHours []int
}

// FromTemplate builds the WorkerRecord shape for one instance of t, without
// assigning an id (the caller sequences ids across all templates).
func FromTemplate(t ShiftTemplate) WorkerRecord {
	w := WorkerRecord{
		Type:       t.Type,
		ShiftStart: t.Start,
		ShiftEnd:   t.ShiftEnd(),
	}
	if t.Type.HasDayOff() {
		d := t.DayOff
		w.DayOff = &d
	}
	w.ProductiveHours = productiveHoursModClock(t)
	return w
}

// productiveHoursModClock computes a worker record's productive_hours: the
// stored hours are clock-hours mod 24. For overnight FT (start >= 20), the
// list contains hours numerically less than start; those are attributed to
// the following calendar day by the reifier's coverage-derivation rule.
func productiveHoursModClock(t ShiftTemplate) []int {
	var raw []int
	switch t.Type {
	case FT, WFT:
		raw = rawProductiveHours(t.Start, t.BreakOffset)
	case PT, WPT:
		raw = partTimeHours(t.Start)
	}
	out := make([]int, 0, len(raw))
	for _, h := range raw {
		out = append(out, NormalizeHour(h))
	}
	return out
}

// ActiveDays returns the set of calendar days this worker is scheduled on:
// {5,6} for WFT/WPT, else {0..6} \ {day_off}.
func (w WorkerRecord) ActiveDays() []Day {
	if w.Type.IsWeekender() {
		return []Day{Saturday, Sunday}
	}
	var out []Day
	for d := Day(0); d < DaysInWeek; d++ {
		if w.DayOff != nil && d == *w.DayOff {
			continue
		}
		out = append(out, d)
	}
	return out
}
