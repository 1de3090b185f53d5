// Package demandsource provides the DemandSource port and one concrete
// adapter (JSONFileSource). Demand-matrix ingestion (file parsing,
// validation, manual editing) is treated as a collaborator outside the
// roster engine proper; this package is just enough of a collaborator for
// the CLI and worker to have a concrete input boundary to call, not a full
// ingestion/editing tool.
package demandsource

import (
	"context"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// Request bundles the demand matrix and configuration a solve call needs.
type Request struct {
	Demand domain.DemandMatrix
	Config domain.Config
}

// Source is the port the application layer consumes to obtain one solve
// request. Implementations may read a file, a database row, an HTTP body,
// or (in tests) an in-memory fixture.
type Source interface {
	Load(ctx context.Context) (Request, error)
}
