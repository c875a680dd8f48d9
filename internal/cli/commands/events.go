package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vfg2006/fi-dashboard/infrastructure/filesource"
	"github.com/vfg2006/fi-dashboard/internal/usecases/dashboarding"
)

type eventRow struct {
	Date   string `json:"date,omitempty"`
	Year   int    `json:"year,omitempty"`
	Label  string `json:"label"`
	Marked bool   `json:"marked"`
}

func NewEventsCommand(opts *options) *cobra.Command {
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the event rows of the enriched dataset and their chart labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataset, err := filesource.NewDatasetReader(datasetPath).Read(cmd.Context())
			if err != nil {
				return err
			}

			events, err := dataset.Events()
			if err != nil {
				return err
			}

			rows := make([]eventRow, 0, len(events))
			for _, event := range events {
				row := eventRow{Label: dashboarding.EventLabel(event.Description)}
				if event.Date != nil {
					row.Date = event.Date.Format("2006-01-02")
					row.Year = event.Date.Year()
					row.Marked = true
				}
				rows = append(rows, row)
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Date", "Label", "Marker"})
			for _, row := range rows {
				marker := "-"
				if row.Marked {
					marker = "yes"
				}
				t.AppendRow(table.Row{row.Date, row.Label, marker})
			}
			t.AppendFooter(table.Row{"", "events", len(rows)})
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "data/processed/ethiopia_fi_unified_data_enriched.csv", "enriched dataset CSV")
	return cmd
}
