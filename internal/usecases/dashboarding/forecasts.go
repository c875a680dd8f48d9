package dashboarding

import (
	"context"
	"fmt"

	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
)

func (s *Service) forecasts(ctx context.Context, scenario domain.Scenario) *domain.PageView {
	if scenario == "" {
		scenario = domain.ScenarioBase
	}

	table := s.forecaster.Forecast(ctx)

	view := &domain.PageView{
		Header:    fmt.Sprintf("%s Forecasts", forecastSpan(table)),
		Scenario:  scenario,
		Scenarios: domain.Scenarios(),
	}

	if table.FallbackReason != "" {
		view.Alerts = append(view.Alerts, domain.Alert{
			Level:   domain.AlertWarning,
			Message: fmt.Sprintf("Forecast source unavailable, showing placeholder values: %s", table.FallbackReason),
		})
	}

	view.Sections = append(view.Sections, domain.Section{
		Figure: ScenarioFigure(forecasting.SeriesFor(table, scenario)),
	})

	view.Blocks = append(view.Blocks, domain.TextBlock{
		Title: "Key Projected Milestones (Base scenario)",
		Bullets: []string{
			"2026: Access ~60% (NDPS effect)",
			"2027: Usage ~35-40% if active gap narrows",
		},
	})

	return view
}

// ScenarioFigure plots the Access and Usage lines of one scenario
func ScenarioFigure(series forecasting.ScenarioSeries) *domain.Figure {
	return domain.NewLineFigure("forecast", fmt.Sprintf("%s Scenario Forecast", series.Scenario)).
		AddLine("Access Forecast", series.Years, series.Access).
		AddLine("Usage Forecast", series.Years, series.Usage).
		Titles("", "Percentage (%)")
}

func forecastSpan(table *domain.ForecastTable) string {
	if len(table.Rows) == 0 {
		return ""
	}
	first, last := table.Rows[0].Year, table.Rows[len(table.Rows)-1].Year
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d–%d", first, last)
}
