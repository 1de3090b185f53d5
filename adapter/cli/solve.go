package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiftforge/rosterengine/adapter/demandsource"
	"github.com/shiftforge/rosterengine/internal/roster/application/commands"
	"github.com/shiftforge/rosterengine/internal/roster/application/services"
)

var solveDemandFile string

// progressSetter is satisfied by both *commands.SolveRosterHandler and
// *commands.AuditedSolveRosterHandler, letting solve render live stage
// notifications regardless of which one app.SolveRosterHandler holds.
type progressSetter interface {
	SetProgress(services.ProgressReporter)
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a weekly roster from a demand file",
	Long: `Solve reads an hourly demand matrix and configuration from a JSON
file, runs the two-phase roster optimization, and prints the resulting
headcount, type mix, and coverage grid.

Example:
  rosterctl solve --demand demand.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SolveRosterHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Solve requires a configured solver backend.")
			return nil
		}

		req, err := demandsource.JSONFileSource{Path: solveDemandFile}.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load demand: %w", err)
		}

		if setter, ok := app.SolveRosterHandler.(progressSetter); ok {
			progress := services.NewChannelProgress()
			setter.SetProgress(progress)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for stage := range progress.Stages {
					fmt.Fprintf(cmd.ErrOrStderr(), "... %s\n", stage)
				}
			}()
			defer func() {
				close(progress.Stages)
				<-done
			}()
		}

		result, err := app.SolveRosterHandler.Handle(cmd.Context(), commands.SolveRosterCommand{
			Demand: req.Demand,
			Config: req.Config,
		})
		if err != nil {
			return fmt.Errorf("failed to solve roster: %w", err)
		}

		return app.Presenter.Present(cmd.OutOrStdout(), result)
	},
}

func init() {
	solveCmd.Flags().StringVarP(&solveDemandFile, "demand", "d", "", "path to the demand JSON file (required)")
	solveCmd.MarkFlagRequired("demand")

	rootCmd.AddCommand(solveCmd)
}
