package forecasting

import "github.com/vfg2006/fi-dashboard/internal/domain"

// ScenarioSeries holds the Access and Usage lines plotted for one scenario
type ScenarioSeries struct {
	Scenario domain.Scenario `json:"scenario"`
	Years    []float64       `json:"years"`
	Access   []float64       `json:"access"`
	Usage    []float64       `json:"usage"`
}

func SeriesFor(table *domain.ForecastTable, scenario domain.Scenario) ScenarioSeries {
	series := ScenarioSeries{
		Scenario: scenario,
		Years:    table.Years(),
		Access:   make([]float64, len(table.Rows)),
		Usage:    make([]float64, len(table.Rows)),
	}
	for i, row := range table.Rows {
		series.Access[i] = row.Access(scenario)
		series.Usage[i] = row.Usage(scenario)
	}
	return series
}

// ProgressPoint is one year of the account ownership path toward the national target
type ProgressPoint struct {
	Year             int     `json:"year"`
	AccountOwnership float64 `json:"account_ownership"`
	Forecast         bool    `json:"forecast"`
}

// Progress appends the base-scenario Access forecast to the historical series
func Progress(historical domain.HistoricalSeries, table *domain.ForecastTable) []ProgressPoint {
	points := make([]ProgressPoint, 0, len(historical)+len(table.Rows))
	for _, p := range historical {
		points = append(points, ProgressPoint{Year: p.Year, AccountOwnership: p.AccountOwnership})
	}
	for _, row := range table.Rows {
		points = append(points, ProgressPoint{Year: row.Year, AccountOwnership: row.AccessBase, Forecast: true})
	}
	return points
}

// ProgressXY splits progress points into plot coordinates
func ProgressXY(points []ProgressPoint) (x, y []float64) {
	x = make([]float64, len(points))
	y = make([]float64, len(points))
	for i, p := range points {
		x[i] = float64(p.Year)
		y[i] = p.AccountOwnership
	}
	return x, y
}

// FirstYearAtOrAbove returns the first year the path reaches target
func FirstYearAtOrAbove(points []ProgressPoint, target float64) (ProgressPoint, bool) {
	for _, p := range points {
		if p.AccountOwnership >= target {
			return p, true
		}
	}
	return ProgressPoint{}, false
}
