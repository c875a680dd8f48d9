package dashboarding

import (
	"context"
	"fmt"

	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

const (
	Title    = "Ethiopia Financial Inclusion Forecasting Dashboard"
	Subtitle = "Interactive exploration of historical trends, event impacts, and 2025–2027 forecasts."

	RunInstructionsTitle = "Run Instructions"
	RunInstructions      = "Run locally: `go run ./cmd/api` then open http://localhost:8501"

	DownloadURL = "/v1/dataset/download"
)

type Dashboard interface {
	Page(ctx context.Context, page domain.Page, scenario domain.Scenario) (*domain.PageView, error)
	Menu(active domain.Page) []domain.MenuItem
}

type Service struct {
	loader       loading.Loader
	forecaster   forecasting.Forecaster
	downloadName string
}

func NewService(loader loading.Loader, forecaster forecasting.Forecaster, downloadName string) *Service {
	return &Service{
		loader:       loader,
		forecaster:   forecaster,
		downloadName: downloadName,
	}
}

// Page builds the view for page. scenario only affects the Forecasts page.
func (s *Service) Page(ctx context.Context, page domain.Page, scenario domain.Scenario) (*domain.PageView, error) {
	log.ForContext(ctx).WithFields(log.Fields{
		"page":     page,
		"scenario": scenario,
	}).Debug("dashboard: building page")

	var view *domain.PageView
	switch page {
	case domain.PageOverview:
		view = s.overview(ctx)
	case domain.PageTrends:
		view = s.trends(ctx)
	case domain.PageForecasts:
		view = s.forecasts(ctx, scenario)
	case domain.PageInclusionProjections:
		view = s.inclusionProjections(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPage, page)
	}

	view.Page = page
	view.Slug = page.Slug()
	return view, nil
}

// Menu lists the sidebar entries with active marked
func (s *Service) Menu(active domain.Page) []domain.MenuItem {
	pages := domain.Pages()
	items := make([]domain.MenuItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, domain.MenuItem{
			Page:   p,
			Slug:   p.Slug(),
			URL:    "/pages/" + p.Slug(),
			Active: p == active,
		})
	}
	return items
}
