package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fi-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/fi-dashboard/infrastructure/filesource"
	"github.com/vfg2006/fi-dashboard/infrastructure/repository"
	"github.com/vfg2006/fi-dashboard/internal/api"
	"github.com/vfg2006/fi-dashboard/internal/config"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/scheduler"
	"github.com/vfg2006/fi-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/fi-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if !log.Configure(cfg.App.LogLevel) {
		logrus.Warnf("invalid log level %q, using info", cfg.App.LogLevel)
	}
	logrus.Infof("log level set to %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := loading.NewService(filesource.NewDatasetReader(cfg.Dataset.Path))
	if _, err := loader.Reload(ctx); err != nil {
		// the dashboard still serves the static pages; Trends shows the load error
		logrus.WithError(err).Warn("initial dataset load failed")
	}

	provider, closeProvider := forecastProvider(ctx, cfg)
	defer closeProvider()

	forecaster := forecasting.NewService(provider)
	dashboard := dashboarding.NewService(loader, forecaster, cfg.Dataset.DownloadName)
	authenticator := authenticating.NewService(cfg.Auth)
	if !authenticator.Enabled() {
		logrus.Info("operator auth not configured, operator routes are open")
	}

	datasetReloadService := scheduler.NewDatasetReloadService(loader, cfg)
	if err := datasetReloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting dataset reload scheduler")
	}

	var background []api.Background
	if cfg.Dataset.Watch {
		background = append(background, filesource.NewWatcher(cfg.Dataset.Path, 0, datasetReloadService.Reload))
	}

	server, err := api.New(cfg, dashboard, loader, authenticator, datasetReloadService, background...)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// forecastProvider picks the forecast table source. The returned func releases it.
func forecastProvider(ctx context.Context, cfg *config.Config) (forecasting.Provider, func()) {
	switch cfg.Forecast.Source {
	case config.ForecastSourceFile:
		logrus.WithField("file", cfg.Forecast.File).Info("forecast table read from file")
		return filesource.NewForecastFileReader(cfg.Forecast.File), func() {}
	case config.ForecastSourcePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			// Forecast falls back to the placeholder table and the page says so
			logrus.WithError(err).Error("error connecting to PostgreSQL, forecast will use placeholder values")
			return unavailableProvider{err: err}, func() {}
		}
		logrus.Info("forecast table read from PostgreSQL")
		return repository.NewForecastRepository(conn, cfg.Forecast.ModelVersion), func() { _ = conn.Close() }
	default:
		return forecasting.StaticProvider{}, func() {}
	}
}

type unavailableProvider struct {
	err error
}

func (p unavailableProvider) Forecast(context.Context) (*domain.ForecastTable, error) {
	return nil, p.err
}
