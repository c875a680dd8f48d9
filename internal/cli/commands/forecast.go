package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
	"github.com/vfg2006/fi-dashboard/pkg/utils"
)

func NewForecastCommand(opts *options) *cobra.Command {
	var scenarioName string

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show the Access and Usage forecast of a scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scenario, err := domain.ParseScenario(scenarioName)
			if err != nil {
				return err
			}

			forecast := opts.forecaster().Forecast(cmd.Context())
			if forecast.FallbackReason != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: using placeholder forecast: %s\n", forecast.FallbackReason)
			}

			series := forecasting.SeriesFor(forecast, scenario)
			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), series)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.SetTitle(fmt.Sprintf("%s Scenario Forecast", series.Scenario))
			t.AppendHeader(table.Row{"Year", "Access Forecast", "Usage Forecast"})
			for i, year := range series.Years {
				t.AppendRow(table.Row{int(year), utils.FormatPercent(series.Access[i]), utils.FormatPercent(series.Usage[i])})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", string(domain.ScenarioBase), "Base, Optimistic or Pessimistic")
	return cmd
}
