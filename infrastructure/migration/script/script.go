// Command script seeds the forecast table from a YAML model export, or from the
// built-in placeholder forecast when no file is given.
//
//	go run ./infrastructure/migration/script -file data/forecast/forecast.yaml -model-version v2
package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fi-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/fi-dashboard/infrastructure/filesource"
	"github.com/vfg2006/fi-dashboard/infrastructure/repository"
	"github.com/vfg2006/fi-dashboard/internal/config"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

func main() {
	file := flag.String("file", "", "forecast YAML file (defaults to the placeholder forecast)")
	modelVersion := flag.String("model-version", "", "model version to store the rows under (defaults to FORECAST_MODEL_VERSION)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	if *modelVersion == "" {
		*modelVersion = cfg.Forecast.ModelVersion
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	table, err := loadForecast(ctx, *file)
	if err != nil {
		log.L.WithError(err).Fatal("seed: could not load forecast")
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("seed: could not connect to PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := repository.CreateForecastSchema(ctx, tx); err != nil {
			return err
		}
		return repository.ReplaceForecast(ctx, tx, *modelVersion, table.Rows)
	})
	if err != nil {
		log.L.WithError(err).Fatal("seed: forecast not stored")
	}

	log.L.WithFields(log.Fields{
		"source":        table.Source,
		"model_version": *modelVersion,
		"rows":          len(table.Rows),
		"duration":      time.Since(startTime).String(),
	}).Info("seed: forecast stored")
}

func loadForecast(ctx context.Context, file string) (*domain.ForecastTable, error) {
	if file == "" {
		return domain.DefaultForecast(), nil
	}
	return filesource.NewForecastFileReader(file).Forecast(ctx)
}
