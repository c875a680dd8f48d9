package filesource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastYAML = `forecast:
  - {year: 2025, access_base: 56, access_lower: 51, access_upper: 61, usage_base: 26, usage_lower: 21, usage_upper: 31}
  - {year: 2026, access_base: 61, access_lower: 56, access_upper: 66, usage_base: 36, usage_lower: 31, usage_upper: 41}
historical:
  - {year: 2011, account_ownership: 14}
  - {year: 2024, account_ownership: 49}
`

func TestForecastFileReader(t *testing.T) {
	reader := NewForecastFileReader(writeFile(t, "forecast.yaml", forecastYAML))
	ctx := context.Background()

	table, err := reader.Forecast(ctx)
	require.NoError(t, err)
	assert.Equal(t, "file", table.Source)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2026, table.Rows[1].Year)
	assert.Equal(t, 56.0, table.Rows[1].AccessLower)

	historical, err := reader.Historical(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{2011, 2024}, historical.Years())
	assert.Equal(t, []float64{14, 49}, historical.Values())
}

func TestForecastFileReader_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "forecast: [", wantErr: "decode forecast file"},
		{name: "no rows", content: "forecast: []\n", wantErr: "no rows"},
		{name: "base outside bounds", content: "forecast:\n  - {year: 2025, access_base: 70, access_lower: 50, access_upper: 60}\n", wantErr: "outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewForecastFileReader(writeFile(t, "forecast.yaml", tt.content))
			_, err := reader.Forecast(ctx)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := NewForecastFileReader(filepath.Join(t.TempDir(), "missing.yaml")).Forecast(ctx)
	assert.ErrorContains(t, err, "read forecast file")
}

func TestForecastFileReader_NoHistoricalSection(t *testing.T) {
	content := "forecast:\n  - {year: 2025, access_base: 55, access_lower: 50, access_upper: 60, usage_base: 25, usage_lower: 20, usage_upper: 30}\n"
	reader := NewForecastFileReader(writeFile(t, "forecast.yaml", content))

	historical, err := reader.Historical(context.Background())
	require.NoError(t, err)
	assert.Nil(t, historical)
}
