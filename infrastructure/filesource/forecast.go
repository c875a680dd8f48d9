package filesource

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"gopkg.in/yaml.v3"
)

const forecastFileSource = "file"

// ForecastFile is the YAML layout of an exported model run:
//
//	forecast:
//	  - {year: 2025, access_base: 55, access_lower: 50, ...}
//	historical:
//	  - {year: 2011, account_ownership: 14}
type ForecastFile struct {
	Forecast   []domain.ForecastRow     `yaml:"forecast"`
	Historical []domain.HistoricalPoint `yaml:"historical,omitempty"`
}

// ForecastFileReader serves the forecast table (and optionally the historical series)
// from a YAML file. The file is re-read on every call so a new model run is picked up
// without a restart.
type ForecastFileReader struct {
	path string
}

func NewForecastFileReader(path string) *ForecastFileReader {
	return &ForecastFileReader{path: path}
}

func (r *ForecastFileReader) Forecast(ctx context.Context) (*domain.ForecastTable, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	table := &domain.ForecastTable{Rows: file.Forecast, Source: forecastFileSource}
	if err := table.Validate(); err != nil {
		return nil, errors.Wrapf(err, "forecast file %s", r.path)
	}
	return table, nil
}

// Historical returns the file's historical section; an absent section yields a nil series
func (r *ForecastFileReader) Historical(ctx context.Context) (domain.HistoricalSeries, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(file.Historical) == 0 {
		return nil, nil
	}

	series := domain.HistoricalSeries(file.Historical)
	if err := series.Validate(); err != nil {
		return nil, errors.Wrapf(err, "forecast file %s", r.path)
	}
	return series, nil
}

func (r *ForecastFileReader) load(ctx context.Context) (*ForecastFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read forecast file %s", r.path)
	}

	var file ForecastFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrapf(err, "decode forecast file %s", r.path)
	}
	return &file, nil
}
