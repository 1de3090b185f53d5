// Package eventbus provides the async solve queue: a roster.solve_requested
// message triggers cmd/worker to run the engine, and a roster.solved event
// reports the outcome for downstream consumers. One topic exchange, one
// request/response event pair, plus in-flight progress notifications.
package eventbus

import (
	"encoding/json"
	"time"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

const (
	// ExchangeName is the topic exchange async solve events publish to.
	ExchangeName = "roster.events"
	// SolveRequestedRoutingKey is the routing key a producer publishes to
	// (via RabbitMQPublisher.PublishSolveRequested) to enqueue an async solve.
	SolveRequestedRoutingKey = "roster.solve_requested"
	// SolvedRoutingKey is the routing key cmd/worker publishes to once a
	// solve completes.
	SolvedRoutingKey = "roster.solved"
	// ProgressRoutingKey is the routing key cmd/worker publishes stage
	// notifications to while a solve is in flight.
	ProgressRoutingKey = "roster.solve_progress"
)

// SolveRequestedEvent is the payload of a roster.solve_requested message.
type SolveRequestedEvent struct {
	RunID       string              `json:"run_id"`
	RequestedAt time.Time           `json:"requested_at"`
	Demand      domain.DemandMatrix `json:"demand"`
	Config      SolveRequestConfig  `json:"config"`
}

// SolveRequestConfig is the wire form of domain.Config.
type SolveRequestConfig struct {
	ProductivityRate   int  `json:"productivity_rate"`
	PTCapPct           int  `json:"pt_cap_pct"`
	WeekenderCapPct    int  `json:"weekender_cap_pct"`
	AllowWeekendDayOff bool `json:"allow_weekend_day_off"`
}

// ToDomain converts the wire config back to domain.Config, using the
// package defaults for fields the wire form omits (CoverageModel,
// BreakOffsets), matching demandsource.JSONFileSource's behavior.
func (c SolveRequestConfig) ToDomain() domain.Config {
	return domain.Config{
		ProductivityRate:   c.ProductivityRate,
		PTCapPct:           c.PTCapPct,
		WeekenderCapPct:    c.WeekenderCapPct,
		AllowWeekendDayOff: c.AllowWeekendDayOff,
	}
}

// FromDomainConfig builds the wire form from domain.Config.
func FromDomainConfig(cfg domain.Config) SolveRequestConfig {
	return SolveRequestConfig{
		ProductivityRate:   cfg.ProductivityRate,
		PTCapPct:           cfg.PTCapPct,
		WeekenderCapPct:    cfg.WeekenderCapPct,
		AllowWeekendDayOff: cfg.AllowWeekendDayOff,
	}
}

// SolvedEvent is the payload of a roster.solved message.
type SolvedEvent struct {
	RunID        string `json:"run_id"`
	Status       string `json:"status"`
	TotalWorkers int    `json:"total_workers"`
	SolveTimeMs  int64  `json:"solve_time_ms"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ProgressEvent is the payload of a roster.solve_progress message.
type ProgressEvent struct {
	RunID string `json:"run_id"`
	Stage string `json:"stage"`
}

func marshalEvent(v any) ([]byte, error) {
	return json.Marshal(v)
}
