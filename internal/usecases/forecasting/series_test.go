package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fi-dashboard/internal/domain"
)

func TestSeriesFor(t *testing.T) {
	table := domain.DefaultForecast()

	tests := []struct {
		scenario   domain.Scenario
		wantAccess []float64
		wantUsage  []float64
	}{
		{scenario: domain.ScenarioBase, wantAccess: []float64{55, 60, 65}, wantUsage: []float64{25, 35, 45}},
		{scenario: domain.ScenarioOptimistic, wantAccess: []float64{60, 65, 70}, wantUsage: []float64{30, 40, 50}},
		{scenario: domain.ScenarioPessimistic, wantAccess: []float64{50, 55, 60}, wantUsage: []float64{20, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(string(tt.scenario), func(t *testing.T) {
			series := SeriesFor(table, tt.scenario)
			assert.Equal(t, tt.scenario, series.Scenario)
			assert.Equal(t, []float64{2025, 2026, 2027}, series.Years)
			assert.Equal(t, tt.wantAccess, series.Access)
			assert.Equal(t, tt.wantUsage, series.Usage)
		})
	}
}

func TestProgress(t *testing.T) {
	points := Progress(domain.DefaultHistorical(), domain.DefaultForecast())
	require.Len(t, points, 8)

	x, y := ProgressXY(points)
	assert.Equal(t, []float64{2011, 2014, 2017, 2021, 2024, 2025, 2026, 2027}, x)
	assert.Equal(t, []float64{14, 22, 35, 46, 49, 55, 60, 65}, y)

	assert.False(t, points[4].Forecast)
	assert.True(t, points[5].Forecast)

	reached, ok := FirstYearAtOrAbove(points, 60)
	require.True(t, ok)
	assert.Equal(t, 2026, reached.Year)

	_, ok = FirstYearAtOrAbove(points, 90)
	assert.False(t, ok)
}
