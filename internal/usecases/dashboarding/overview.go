package dashboarding

import (
	"context"
	"fmt"

	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/pkg/utils"
)

// pivotYear splits the growth highlights: the 2021 Findex round precedes the mobile money launches
const pivotYear = 2021

func (s *Service) overview(ctx context.Context) *domain.PageView {
	historical := s.forecaster.Historical(ctx)

	view := &domain.PageView{Header: "Overview & Key Metrics"}

	if latest, ok := historical.Latest(); ok {
		metric := domain.Metric{
			Label: fmt.Sprintf("Latest Account Ownership (%d)", latest.Year),
			Value: utils.FormatPercent(latest.AccountOwnership),
		}
		if previous, ok := historical.Previous(); ok {
			metric.Delta = fmt.Sprintf("%s since %d", utils.FormatPointChange(latest.AccountOwnership-previous.AccountOwnership), previous.Year)
		}
		view.Metrics = append(view.Metrics, metric)
	}

	view.Metrics = append(view.Metrics,
		domain.Metric{Label: "Registered Users (2025 est.)", Value: "55M+", Delta: "Telebirr + M-Pesa"},
		domain.Metric{Label: "Active Users (2025 est.)", Value: "5M+", Delta: "M-Pesa 90-day"},
		domain.Metric{Label: "4G Towns Coverage (2025)", Value: "1,030", Delta: "Major infra leap"},
	)

	view.Blocks = append(view.Blocks, domain.TextBlock{
		Title: "P2P/ATM Crossover Ratio",
		Body:  "Placeholder: data not in unified schema.",
	})
	view.Alerts = append(view.Alerts, domain.Alert{
		Level:   domain.AlertInfo,
		Message: "P2P transactions dominate; merchant/ATM use low, which explains the active gap. (Source: Market Nuances guide)",
	})

	if highlights := growthHighlights(historical); len(highlights) > 0 {
		view.Blocks = append(view.Blocks, domain.TextBlock{
			Title:   "Growth Highlights",
			Bullets: highlights,
		})
	}

	return view
}

func growthHighlights(historical domain.HistoricalSeries) []string {
	highlights := make([]string, 0, 2)

	if before, ok := historical.YearBefore(pivotYear); ok {
		if change, ok := historical.PointChange(before, pivotYear); ok {
			highlights = append(highlights, fmt.Sprintf("Pre-%d: Rapid %s growth", pivotYear, utils.FormatPointChange(change)))
		}
	}

	if latest, ok := historical.Latest(); ok && latest.Year > pivotYear {
		if change, ok := historical.PointChange(pivotYear, latest.Year); ok {
			highlights = append(highlights, fmt.Sprintf("Post-%d: Slow %s despite registration surge", pivotYear, utils.FormatPointChange(change)))
		}
	}

	return highlights
}
