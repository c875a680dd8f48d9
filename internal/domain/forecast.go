package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ForecastRow is one forecast year for the Access and Usage metrics with their confidence bounds
type ForecastRow struct {
	Year        int     `json:"year" yaml:"year"`
	AccessBase  float64 `json:"access_base" yaml:"access_base"`
	AccessLower float64 `json:"access_lower" yaml:"access_lower"`
	AccessUpper float64 `json:"access_upper" yaml:"access_upper"`
	UsageBase   float64 `json:"usage_base" yaml:"usage_base"`
	UsageLower  float64 `json:"usage_lower" yaml:"usage_lower"`
	UsageUpper  float64 `json:"usage_upper" yaml:"usage_upper"`
}

// ForecastTable is one model run. FallbackReason is set when the configured source failed
// and DefaultForecast is served in its place.
type ForecastTable struct {
	Rows           []ForecastRow `json:"rows"`
	Source         string        `json:"source"`
	FallbackReason string        `json:"fallback_reason,omitempty"`
}

var ErrEmptyForecast = errors.New("forecast table has no rows")

// DefaultForecast is the placeholder model output shipped with the dashboard
func DefaultForecast() *ForecastTable {
	return &ForecastTable{
		Source: "static",
		Rows: []ForecastRow{
			{Year: 2025, AccessBase: 55.0, AccessLower: 50.0, AccessUpper: 60.0, UsageBase: 25.0, UsageLower: 20.0, UsageUpper: 30.0},
			{Year: 2026, AccessBase: 60.0, AccessLower: 55.0, AccessUpper: 65.0, UsageBase: 35.0, UsageLower: 30.0, UsageUpper: 40.0},
			{Year: 2027, AccessBase: 65.0, AccessLower: 60.0, AccessUpper: 70.0, UsageBase: 45.0, UsageLower: 40.0, UsageUpper: 50.0},
		},
	}
}

// Validate checks year ordering and that every base value sits inside its bounds
func (t *ForecastTable) Validate() error {
	if t == nil || len(t.Rows) == 0 {
		return ErrEmptyForecast
	}

	for i, row := range t.Rows {
		if i > 0 && row.Year <= t.Rows[i-1].Year {
			return fmt.Errorf("forecast years must ascend: %d after %d", row.Year, t.Rows[i-1].Year)
		}
		if row.AccessLower > row.AccessBase || row.AccessBase > row.AccessUpper {
			return fmt.Errorf("forecast %d: access base %.2f outside [%.2f, %.2f]", row.Year, row.AccessBase, row.AccessLower, row.AccessUpper)
		}
		if row.UsageLower > row.UsageBase || row.UsageBase > row.UsageUpper {
			return fmt.Errorf("forecast %d: usage base %.2f outside [%.2f, %.2f]", row.Year, row.UsageBase, row.UsageLower, row.UsageUpper)
		}
	}

	return nil
}

func (t *ForecastTable) Years() []float64 {
	years := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		years[i] = float64(row.Year)
	}
	return years
}

// RowAt returns the forecast row for year
func (t *ForecastTable) RowAt(year int) (ForecastRow, bool) {
	for _, row := range t.Rows {
		if row.Year == year {
			return row, true
		}
	}
	return ForecastRow{}, false
}

// Scenario selects which forecast columns are plotted
type Scenario string

const (
	ScenarioBase        Scenario = "Base"
	ScenarioOptimistic  Scenario = "Optimistic"
	ScenarioPessimistic Scenario = "Pessimistic"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// Scenarios lists the selectable scenarios in display order
func Scenarios() []Scenario {
	return []Scenario{ScenarioBase, ScenarioOptimistic, ScenarioPessimistic}
}

// ParseScenario is case-insensitive; an empty value selects Base
func ParseScenario(value string) (Scenario, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ScenarioBase, nil
	}
	for _, s := range Scenarios() {
		if strings.EqualFold(value, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScenario, value)
}

// Access returns the Access column for the scenario: base, upper CI (optimistic) or lower CI (pessimistic)
func (r ForecastRow) Access(s Scenario) float64 {
	switch s {
	case ScenarioOptimistic:
		return r.AccessUpper
	case ScenarioPessimistic:
		return r.AccessLower
	default:
		return r.AccessBase
	}
}

// Usage mirrors Access for the Usage metric
func (r ForecastRow) Usage(s Scenario) float64 {
	switch s {
	case ScenarioOptimistic:
		return r.UsageUpper
	case ScenarioPessimistic:
		return r.UsageLower
	default:
		return r.UsageBase
	}
}
