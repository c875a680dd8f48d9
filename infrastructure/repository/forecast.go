// Package repository holds the database-backed sources of dashboard data
package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/fi-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/fi-dashboard/internal/domain"
)

const (
	forecastTable = "forecast f"

	forecastSource = "postgres"

	// several model versions may be stored; without a configured one the last seeded wins
	latestModelVersion = "f.model_version = (SELECT model_version FROM forecast ORDER BY created_at DESC, model_version DESC LIMIT 1)"
)

type ForecastRepository interface {
	Forecast(ctx context.Context) (*domain.ForecastTable, error)
}

type forecastRepository struct {
	conn         postgres.Queryer
	modelVersion string
}

// NewForecastRepository reads the rows of modelVersion, or of the most recently seeded
// version when modelVersion is empty
func NewForecastRepository(conn postgres.Queryer, modelVersion string) ForecastRepository {
	return &forecastRepository{
		conn:         conn,
		modelVersion: modelVersion,
	}
}

func (r *forecastRepository) Forecast(ctx context.Context) (*domain.ForecastTable, error) {
	queryBuilder := squirrel.
		Select(
			"f.year",
			"f.access_base",
			"f.access_lower",
			"f.access_upper",
			"f.usage_base",
			"f.usage_lower",
			"f.usage_upper",
		).
		From(forecastTable).
		OrderBy("f.year ASC").
		PlaceholderFormat(squirrel.Dollar)

	if r.modelVersion != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"f.model_version": r.modelVersion})
	} else {
		queryBuilder = queryBuilder.Where(latestModelVersion)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build forecast query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query forecast")
	}
	defer rows.Close()

	table := &domain.ForecastTable{
		Rows:   make([]domain.ForecastRow, 0),
		Source: forecastSource,
	}

	for rows.Next() {
		var row domain.ForecastRow
		err := rows.Scan(
			&row.Year,
			&row.AccessBase,
			&row.AccessLower,
			&row.AccessUpper,
			&row.UsageBase,
			&row.UsageLower,
			&row.UsageUpper,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan forecast row")
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate forecast rows")
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	return table, nil
}
