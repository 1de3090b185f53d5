package domain

// CoverageMatrix is a 7x24 dense grid: C[d][h] is the number of workers
// productive in slot (d,h).
type CoverageMatrix [DaysInWeek][HoursInDay]int

// Add increments C[day][hour] by delta.
func (c *CoverageMatrix) Add(day Day, hour, delta int) {
	c[day][hour] += delta
}

// Meets reports whether c satisfies r everywhere r is non-zero, under the
// discrete-break coverage model.
func (c CoverageMatrix) Meets(r RequiredMatrix) bool {
	for day := 0; day < DaysInWeek; day++ {
		for hour := 0; hour < HoursInDay; hour++ {
			if r[day][hour] > 0 && c[day][hour] < r[day][hour] {
				return false
			}
		}
	}
	return true
}

// BuildCoverage reconstructs a CoverageMatrix from a list of worker
// records, applying the same wrap-attribution rule the Roster Reifier
// uses. Used both by the reifier itself and by round-trip tests asserting
// that rebuilding C from workers recovers the reported coverage exactly.
func BuildCoverage(workers []WorkerRecord) CoverageMatrix {
	var c CoverageMatrix
	for _, w := range workers {
		for _, d := range w.ActiveDays() {
			for _, h := range w.ProductiveHours {
				day, hour, ok := attributeHour(w, d, h)
				if !ok {
					continue
				}
				c.Add(day, hour, 1)
			}
		}
	}
	return c
}

// attributeHour implements the coverage-derivation rule for a single
// active day d and productive hour h: same-day when h >= shift_start, else
// wrapped to (d+1) mod 7. The wrap is dropped (ok=false) when the
// destination day is the worker's day off, preserving day-off discipline
// for the tail of an overnight shift that started the day before a day off.
func attributeHour(w WorkerRecord, d Day, h int) (day Day, hour int, ok bool) {
	if h >= w.ShiftStart {
		return d, h, true
	}
	next := d.Next()
	if w.DayOff != nil && next == *w.DayOff {
		return 0, 0, false
	}
	return next, h, true
}
