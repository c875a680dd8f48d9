package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/fi-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/fi-dashboard/internal/domain"
)

const forecastSchema = `CREATE TABLE IF NOT EXISTS forecast (
	model_version TEXT NOT NULL DEFAULT '',
	year          INTEGER NOT NULL,
	access_base   DOUBLE PRECISION NOT NULL,
	access_lower  DOUBLE PRECISION NOT NULL,
	access_upper  DOUBLE PRECISION NOT NULL,
	usage_base    DOUBLE PRECISION NOT NULL,
	usage_lower   DOUBLE PRECISION NOT NULL,
	usage_upper   DOUBLE PRECISION NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (model_version, year)
)`

// CreateForecastSchema creates the forecast table when it does not exist yet
func CreateForecastSchema(ctx context.Context, exec postgres.Execer) error {
	if _, err := exec.ExecContext(ctx, forecastSchema); err != nil {
		return errors.Wrap(err, "create forecast table")
	}
	return nil
}

// ReplaceForecast swaps every row stored under modelVersion for rows. Run it inside a
// transaction so readers never see a partial model run.
func ReplaceForecast(ctx context.Context, exec postgres.Execer, modelVersion string, rows []domain.ForecastRow) error {
	table := &domain.ForecastTable{Rows: rows}
	if err := table.Validate(); err != nil {
		return err
	}

	query, args, err := squirrel.
		Delete("forecast").
		Where(squirrel.Eq{"model_version": modelVersion}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build forecast delete")
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete forecast %q", modelVersion)
	}

	insert := squirrel.
		Insert("forecast").
		Columns(
			"model_version",
			"year",
			"access_base",
			"access_lower",
			"access_upper",
			"usage_base",
			"usage_lower",
			"usage_upper",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		insert = insert.Values(
			modelVersion,
			row.Year,
			row.AccessBase,
			row.AccessLower,
			row.AccessUpper,
			row.UsageBase,
			row.UsageLower,
			row.UsageUpper,
		)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return errors.Wrap(err, "build forecast insert")
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "insert forecast %q", modelVersion)
	}

	return nil
}
