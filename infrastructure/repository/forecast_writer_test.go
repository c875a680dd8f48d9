package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fi-dashboard/internal/domain"
)

func TestCreateForecastSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS forecast").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, CreateForecastSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceForecast(t *testing.T) {
	rows := domain.DefaultForecast().Rows[:2]

	t.Run("deletes then inserts in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM forecast WHERE model_version = $1")).
			WithArgs("v1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO forecast (model_version,year,access_base,access_lower,access_upper,usage_base,usage_lower,usage_upper) VALUES ($1,$2,$3,$4,$5,$6,$7,$8),($9,")).
			WithArgs(
				"v1", 2025, 55.0, 50.0, 60.0, 25.0, 20.0, 30.0,
				"v1", 2026, 60.0, 55.0, 65.0, 35.0, 30.0, 40.0,
			).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		require.NoError(t, ReplaceForecast(context.Background(), tx, "v1", rows))
		require.NoError(t, tx.Commit())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid rows never reach the database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		err = ReplaceForecast(context.Background(), db, "v1", nil)
		assert.ErrorIs(t, err, domain.ErrEmptyForecast)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM forecast").WillReturnError(errors.New("permission denied"))

		err = ReplaceForecast(context.Background(), db, "v1", rows)
		assert.ErrorContains(t, err, "delete forecast")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
