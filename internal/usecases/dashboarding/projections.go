package dashboarding

import (
	"context"
	"fmt"

	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
)

// NFIS-II account ownership target
const (
	targetOwnership = 60.0
	targetYear      = 2025
	targetColor     = "red"
)

func (s *Service) inclusionProjections(ctx context.Context) *domain.PageView {
	points := forecasting.Progress(s.forecaster.Historical(ctx), s.forecaster.Forecast(ctx))

	view := &domain.PageView{
		Header: fmt.Sprintf("Progress Toward %.0f%% Target", targetOwnership),
		Metrics: []domain.Metric{{
			Label: "National Target (NFIS-II)",
			Value: fmt.Sprintf("%.0f%% Account Ownership by %d", targetOwnership, targetYear),
		}},
	}

	view.Sections = append(view.Sections, domain.Section{Figure: ProgressFigure(points)})

	if reached, ok := forecasting.FirstYearAtOrAbove(points, targetOwnership); ok {
		view.Metrics[0].Delta = fmt.Sprintf("Base path reaches target in %d", reached.Year)
	}

	view.Blocks = append(view.Blocks, domain.TextBlock{
		Title: "Answers to Key Questions",
		Bullets: []string{
			"Drive inclusion? Active usage activation, interoperability (NDPS), infrastructure.",
			"Stagnation cause? Registered vs active gap (P2P dominance, low merchant adoption).",
			"Gender gap? Not in data, a limitation.",
			"Gaps limiting analysis? Sparse Findex, no disaggregation, post-2024 enriched.",
		},
	})

	return view
}

// ProgressFigure plots historical and base-forecast ownership against the target line
func ProgressFigure(points []forecasting.ProgressPoint) *domain.Figure {
	x, y := forecasting.ProgressXY(points)

	figure := domain.NewLineFigure("progress", fmt.Sprintf("Progress Toward %.0f%% Account Ownership Target", targetOwnership)).
		AddLine(ownershipSeries, x, y).
		Titles("Year", ownershipSeries).
		PercentYAxis().
		AddHLine(targetOwnership, fmt.Sprintf("%.0f%% Target", targetOwnership), targetColor)

	if len(x) > 0 {
		figure.XRange(x[0], x[len(x)-1])
	}
	return figure
}
