// Package presenter provides the ResultPresenter port and one concrete
// adapter (TextPresenter). The roster engine itself never renders charts,
// heatmaps, or spreadsheets; this package is a thin plain-text rendering
// of its result, not a presentation layer in its own right.
package presenter

import (
	"io"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// Presenter renders a domain.RosterResult for a human reader.
type Presenter interface {
	Present(w io.Writer, result domain.RosterResult) error
}
