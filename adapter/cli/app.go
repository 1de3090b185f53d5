package cli

import (
	"context"

	"github.com/shiftforge/rosterengine/adapter/presenter"
	"github.com/shiftforge/rosterengine/internal/roster/application/commands"
	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// RosterSolver is the capability the solve subcommand depends on: either a
// bare *commands.SolveRosterHandler or a
// *commands.AuditedSolveRosterHandler wrapping it with caching/audit.
type RosterSolver interface {
	Handle(ctx context.Context, cmd commands.SolveRosterCommand) (domain.RosterResult, error)
}

// App holds the CLI application's dependencies.
type App struct {
	SolveRosterHandler RosterSolver
	Presenter          presenter.Presenter
}

// NewApp builds a new CLI application around the given handler.
func NewApp(solveRosterHandler RosterSolver) *App {
	return &App{
		SolveRosterHandler: solveRosterHandler,
		Presenter:          presenter.TextPresenter{},
	}
}

// SetPresenter overrides the default presenter.
func (a *App) SetPresenter(p presenter.Presenter) {
	a.Presenter = p
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
