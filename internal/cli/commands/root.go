// Package commands implements the report CLI: offline views of the forecast
// tables and dataset that the dashboard serves.
package commands

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/vfg2006/fi-dashboard/infrastructure/filesource"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type options struct {
	forecastFile string
	output       string
}

// NewRootCommand builds the report command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "report",
		Short:         "Print dashboard figures as tables",
		Long:          `Print the forecast scenarios, the progress toward the account ownership target and the dataset events without starting the dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			opts.output = strings.ToLower(opts.output)
			if opts.output != outputTable && opts.output != outputJSON {
				return fmt.Errorf("unknown output %q: use %s or %s", opts.output, outputTable, outputJSON)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.forecastFile, "forecast-file", "", "YAML forecast table; the built-in placeholder table when empty")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")

	root.AddCommand(
		NewForecastCommand(opts),
		NewProgressCommand(opts),
		NewEventsCommand(opts),
		NewHashPasswordCommand(),
	)

	return root
}

func (o *options) forecaster() *forecasting.Service {
	if o.forecastFile == "" {
		return forecasting.NewService(nil)
	}
	return forecasting.NewService(filesource.NewForecastFileReader(o.forecastFile))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
