package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
	"github.com/vfg2006/fi-dashboard/pkg/utils"
)

type progressReport struct {
	Target    float64                     `json:"target"`
	ReachedIn int                         `json:"reached_in,omitempty"`
	Points    []forecasting.ProgressPoint `json:"points"`
}

func NewProgressCommand(opts *options) *cobra.Command {
	var target float64

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show account ownership history and base forecast against the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forecaster := opts.forecaster()
			points := forecasting.Progress(forecaster.Historical(cmd.Context()), forecaster.Forecast(cmd.Context()))

			report := progressReport{Target: target, Points: points}
			reached, ok := forecasting.FirstYearAtOrAbove(points, target)
			if ok {
				report.ReachedIn = reached.Year
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Year", "Account Ownership", "Source"})
			for _, p := range points {
				source := "Findex"
				if p.Forecast {
					source = "Forecast (Base)"
				}
				t.AppendRow(table.Row{p.Year, utils.FormatPercent(p.AccountOwnership), source})
			}
			t.Render()

			if ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s target reached in %d\n", utils.FormatPercent(target), reached.Year)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s target not reached within the forecast\n", utils.FormatPercent(target))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&target, "target", 60, "account ownership target in percent")
	return cmd
}
