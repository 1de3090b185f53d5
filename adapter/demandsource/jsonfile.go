package demandsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// jsonDocument is the on-disk shape a JSONFileSource reads: a dense 7x24
// demand grid plus the four configuration fields, percentages given in
// fractional form and rounded half-up before use.
type jsonDocument struct {
	Demand [][]int `json:"demand"`
	Config struct {
		ProductivityRate   int     `json:"productivity_rate"`
		PTCapPct           float64 `json:"pt_cap_pct"`
		WeekenderCapPct    float64 `json:"weekender_cap_pct"`
		AllowWeekendDayOff bool    `json:"allow_weekend_day_off"`
	} `json:"config"`
}

// JSONFileSource reads a Request from a single JSON file on disk.
type JSONFileSource struct {
	Path string
}

// Load implements Source.
func (s JSONFileSource) Load(ctx context.Context) (Request, error) {
	if err := ctx.Err(); err != nil {
		return Request{}, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Request{}, fmt.Errorf("demandsource: reading %s: %w", s.Path, err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Request{}, fmt.Errorf("demandsource: parsing %s: %w", s.Path, err)
	}

	demand, err := domain.NewDemandMatrix(doc.Demand)
	if err != nil {
		return Request{}, fmt.Errorf("demandsource: %s: %w", s.Path, err)
	}

	cfg := domain.Config{
		ProductivityRate:   doc.Config.ProductivityRate,
		PTCapPct:           domain.RoundPercentHalfUp(doc.Config.PTCapPct),
		WeekenderCapPct:    domain.RoundPercentHalfUp(doc.Config.WeekenderCapPct),
		AllowWeekendDayOff: doc.Config.AllowWeekendDayOff,
	}
	if err := cfg.Validate(); err != nil {
		return Request{}, fmt.Errorf("demandsource: %s: %w", s.Path, err)
	}

	return Request{Demand: demand, Config: cfg}, nil
}
