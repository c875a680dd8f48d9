package dashboarding

import (
	"context"
	"fmt"

	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

const (
	ownershipSeries = "Account Ownership (%)"

	eventLabelLength = 30
	eventLabelEmpty  = "Event"
)

func (s *Service) trends(ctx context.Context) *domain.PageView {
	historical := s.forecaster.Historical(ctx)

	view := &domain.PageView{Header: "Historical Trends"}

	view.Sections = append(view.Sections, domain.Section{
		Subheader: fmt.Sprintf("Account Ownership Trajectory (Findex %s)", yearSpan(historical)),
		Figure:    TrajectoryFigure(historical),
	})

	overlay := ownershipFigure("events-overlay", "", historical)

	snapshot, err := s.loader.Current()
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("dashboard: trends page without dataset")
		view.Alerts = append(view.Alerts, domain.Alert{
			Level:   domain.AlertError,
			Message: fmt.Sprintf("Could not load the enriched dataset: %s", err),
		})
		view.Sections = append(view.Sections, domain.Section{Subheader: "Events Overlay", Figure: overlay})
		return view
	}

	events, err := snapshot.Dataset.Events()
	if err != nil {
		view.Alerts = append(view.Alerts, domain.Alert{
			Level:   domain.AlertWarning,
			Message: fmt.Sprintf("Event markers unavailable: %s", err),
		})
	}
	AddEventMarkers(overlay, events)
	view.Sections = append(view.Sections, domain.Section{Subheader: "Events Overlay", Figure: overlay})

	view.Download = &domain.DownloadLink{
		Label:    "Download Enriched Dataset",
		URL:      DownloadURL,
		FileName: s.downloadName,
		MimeType: "text/csv",
	}

	return view
}

// TrajectoryFigure is the titled account ownership line chart
func TrajectoryFigure(historical domain.HistoricalSeries) *domain.Figure {
	return ownershipFigure("trajectory", "Account Ownership Trajectory", historical)
}

func ownershipFigure(id, title string, historical domain.HistoricalSeries) *domain.Figure {
	return domain.NewLineFigure(id, title).
		AddLine(ownershipSeries, historical.Years(), historical.Values()).
		Titles("Year", ownershipSeries).
		PercentYAxis()
}

// AddEventMarkers draws one dashed vertical line per dated event at the event's year.
// Events whose date did not parse are skipped.
func AddEventMarkers(figure *domain.Figure, events []domain.Event) {
	for _, event := range events {
		if event.Date == nil {
			continue
		}
		figure.AddVLine(float64(event.Date.Year()), EventLabel(event.Description))
	}
}

// EventLabel truncates a description to the marker label length
func EventLabel(description string) string {
	if description == "" {
		return eventLabelEmpty
	}
	runes := []rune(description)
	if len(runes) > eventLabelLength {
		return string(runes[:eventLabelLength])
	}
	return description
}

func yearSpan(historical domain.HistoricalSeries) string {
	if len(historical) == 0 {
		return ""
	}
	first, last := historical[0].Year, historical[len(historical)-1].Year
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d–%d", first, last)
}
