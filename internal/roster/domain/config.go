package domain

import (
	"fmt"
	"math"
)

// CoverageModel selects how the Model Builder accounts for a 9-hour
// template's break hour when writing coverage-row coefficients.
// Discrete-break is canonical; peak-protected smearing is an admissible
// refinement.
type CoverageModel int

const (
	// DiscreteBreak fixes the break to a single hour, excluded from
	// coverage with coefficient 1 elsewhere.
	DiscreteBreak CoverageModel = iota
	// PeakProtectedSmearing spreads a 9-hour template's break uniformly
	// across the 6 non-peak hours instead of deleting one hour outright.
	PeakProtectedSmearing
)

func (m CoverageModel) String() string {
	switch m {
	case DiscreteBreak:
		return "discrete_break"
	case PeakProtectedSmearing:
		return "peak_protected_smearing"
	default:
		return "unknown"
	}
}

// DefaultBreakOffsets is the reference admissible break-offset set, widened
// from {3,4} to {3,4,5} for richer peak protection; any subset of {1..7}
// is admissible.
var DefaultBreakOffsets = []int{3, 4, 5}

// Config is the four-field configuration input, plus two refinements this
// repository makes explicit (coverage model choice and the break-offset
// set) rather than hard-coding them.
type Config struct {
	// ProductivityRate is orders per worker per productive hour. Must be > 0.
	ProductivityRate int
	// PTCapPct is the maximum share, in [0,100], of the workforce that may
	// be part-time (PT+WPT).
	PTCapPct int
	// WeekenderCapPct is the maximum share, in [0,100], that may be
	// weekenders (WFT+WPT).
	WeekenderCapPct int
	// AllowWeekendDayOff permits weekday workers (FT/PT) to take their day
	// off on Saturday or Sunday. Defaults to false: the source UI never
	// surfaces this flag, so the conservative default stands.
	AllowWeekendDayOff bool
	// CoverageModel picks the Model Builder's coverage-row strategy.
	// Zero value is DiscreteBreak, the canonical model.
	CoverageModel CoverageModel
	// BreakOffsets is the admissible set of break positions within a
	// 9-hour template's span. Nil means DefaultBreakOffsets.
	BreakOffsets []int
}

// EffectiveBreakOffsets returns BreakOffsets, falling back to
// DefaultBreakOffsets when unset.
func (c Config) EffectiveBreakOffsets() []int {
	if len(c.BreakOffsets) == 0 {
		return DefaultBreakOffsets
	}
	return c.BreakOffsets
}

// Validate checks the structural constraints on Config. It does not mutate
// c; callers that round fractional percentages with RoundPercentHalfUp
// assign the rounded values to c before calling it.
func (c Config) Validate() error {
	if c.ProductivityRate <= 0 {
		return fmt.Errorf("%w: productivity_rate must be positive, got %d", ErrInvalidConfig, c.ProductivityRate)
	}
	if c.PTCapPct < 0 || c.PTCapPct > 100 {
		return fmt.Errorf("%w: pt_cap_pct must be in [0,100], got %d", ErrInvalidConfig, c.PTCapPct)
	}
	if c.WeekenderCapPct < 0 || c.WeekenderCapPct > 100 {
		return fmt.Errorf("%w: weekender_cap_pct must be in [0,100], got %d", ErrInvalidConfig, c.WeekenderCapPct)
	}
	for _, b := range c.EffectiveBreakOffsets() {
		if b < 1 || b > 7 {
			return fmt.Errorf("%w: break offset %d outside admissible {1..7}", ErrInvalidConfig, b)
		}
	}
	return nil
}

// RoundPercentHalfUp rounds a fractional percentage to the nearest integer,
// ties rounding away from zero: fractional input is rounded half-up
// before use.
func RoundPercentHalfUp(p float64) int {
	if p >= 0 {
		return int(math.Floor(p + 0.5))
	}
	return -int(math.Floor(-p + 0.5))
}

// DayOffSet returns the set of days a day-off may fall on: {0..4} normally,
// {0..6} when AllowWeekendDayOff is set.
func (c Config) DayOffSet() []Day {
	if c.AllowWeekendDayOff {
		return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
	}
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday}
}
