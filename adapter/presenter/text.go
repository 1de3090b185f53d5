package presenter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// TextPresenter renders a RosterResult as plain text: a summary line, a
// per-type headcount table, and a day x hour coverage grid. Not a
// charting/heatmap/spreadsheet layer.
type TextPresenter struct{}

// Present implements Presenter.
func (TextPresenter) Present(w io.Writer, result domain.RosterResult) error {
	if _, err := fmt.Fprintf(w, "status: %s\n", result.Status); err != nil {
		return err
	}
	if result.Status != domain.StatusOptimal {
		_, err := fmt.Fprintf(w, "error: %s\n", result.ErrorMessage)
		return err
	}

	if _, err := fmt.Fprintf(w, "total workers: %d (solved in %dms)\n\n", result.TotalWorkers, result.SolveTimeMs); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCOUNT")
	for _, t := range domain.AllWorkerTypes() {
		fmt.Fprintf(tw, "%s\t%d\n", t, result.CountsByType[t])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\ncoverage (workers scheduled per day/hour):"); err != nil {
		return err
	}
	return writeCoverageGrid(w, result.Coverage)
}

func writeCoverageGrid(w io.Writer, coverage domain.CoverageMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 2, 1, ' ', 0)
	fmt.Fprint(tw, "DAY")
	for h := 0; h < domain.HoursInDay; h++ {
		fmt.Fprintf(tw, "\t%02d", h)
	}
	fmt.Fprintln(tw)
	for d := domain.Day(0); d < domain.DaysInWeek; d++ {
		fmt.Fprint(tw, d)
		for h := 0; h < domain.HoursInDay; h++ {
			fmt.Fprintf(tw, "\t%d", coverage[d][h])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
