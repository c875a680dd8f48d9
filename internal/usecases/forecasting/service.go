package forecasting

import (
	"context"

	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

// Provider supplies a model run. The postgres repository and the YAML file reader both satisfy it.
type Provider interface {
	Forecast(ctx context.Context) (*domain.ForecastTable, error)
}

// HistoricalProvider is implemented by providers that also carry the Findex series
type HistoricalProvider interface {
	Historical(ctx context.Context) (domain.HistoricalSeries, error)
}

type Forecaster interface {
	Forecast(ctx context.Context) *domain.ForecastTable
	Historical(ctx context.Context) domain.HistoricalSeries
}

// StaticProvider serves the built-in placeholder forecast
type StaticProvider struct{}

func (StaticProvider) Forecast(context.Context) (*domain.ForecastTable, error) {
	return domain.DefaultForecast(), nil
}

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	if provider == nil {
		provider = StaticProvider{}
	}
	return &Service{provider: provider}
}

// Forecast never fails: when the provider errors or returns an invalid table the
// placeholder forecast is returned with FallbackReason set.
func (s *Service) Forecast(ctx context.Context) *domain.ForecastTable {
	table, err := s.provider.Forecast(ctx)
	if err == nil {
		err = table.Validate()
	}
	if err == nil {
		return table
	}

	log.ForContext(ctx).WithError(err).Warn("forecast: source failed, serving placeholder forecast")

	fallback := domain.DefaultForecast()
	fallback.FallbackReason = err.Error()
	return fallback
}

// Historical prefers the provider's series and falls back to the built-in Findex values
func (s *Service) Historical(ctx context.Context) domain.HistoricalSeries {
	hp, ok := s.provider.(HistoricalProvider)
	if !ok {
		return domain.DefaultHistorical()
	}

	series, err := hp.Historical(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("forecast: historical series unavailable, using Findex defaults")
		return domain.DefaultHistorical()
	}
	if len(series) == 0 {
		return domain.DefaultHistorical()
	}
	return series
}
