// Package domain holds the dashboard's data model: historical and forecast series,
// the enriched dataset, chart figures and page views.
package domain

import "fmt"

// HistoricalPoint is one Global Findex observation of account ownership
type HistoricalPoint struct {
	Year             int     `json:"year" yaml:"year"`
	AccountOwnership float64 `json:"account_ownership" yaml:"account_ownership"`
}

// HistoricalSeries is ordered by year
type HistoricalSeries []HistoricalPoint

// DefaultHistorical returns the Findex account ownership trajectory 2011–2024
func DefaultHistorical() HistoricalSeries {
	return HistoricalSeries{
		{Year: 2011, AccountOwnership: 14.0},
		{Year: 2014, AccountOwnership: 22.0},
		{Year: 2017, AccountOwnership: 35.0},
		{Year: 2021, AccountOwnership: 46.0},
		{Year: 2024, AccountOwnership: 49.0},
	}
}

func (s HistoricalSeries) Years() []float64 {
	years := make([]float64, len(s))
	for i, p := range s {
		years[i] = float64(p.Year)
	}
	return years
}

func (s HistoricalSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.AccountOwnership
	}
	return values
}

// Latest returns the most recent observation
func (s HistoricalSeries) Latest() (HistoricalPoint, bool) {
	if len(s) == 0 {
		return HistoricalPoint{}, false
	}
	return s[len(s)-1], true
}

// Previous returns the observation before the latest one
func (s HistoricalSeries) Previous() (HistoricalPoint, bool) {
	if len(s) < 2 {
		return HistoricalPoint{}, false
	}
	return s[len(s)-2], true
}

func (s HistoricalSeries) ValueAt(year int) (float64, bool) {
	for _, p := range s {
		if p.Year == year {
			return p.AccountOwnership, true
		}
	}
	return 0, false
}

// Validate requires at least one point and strictly ascending years
func (s HistoricalSeries) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("historical series is empty")
	}
	for i := 1; i < len(s); i++ {
		if s[i].Year <= s[i-1].Year {
			return fmt.Errorf("historical series years must ascend: %d after %d", s[i].Year, s[i-1].Year)
		}
	}
	return nil
}

// PointChange returns the percentage-point change between two observed years
func (s HistoricalSeries) PointChange(fromYear, toYear int) (float64, bool) {
	from, ok := s.ValueAt(fromYear)
	if !ok {
		return 0, false
	}
	to, ok := s.ValueAt(toYear)
	if !ok {
		return 0, false
	}
	return to - from, true
}

// YearBefore returns the observation year preceding year
func (s HistoricalSeries) YearBefore(year int) (int, bool) {
	for i := len(s) - 1; i > 0; i-- {
		if s[i].Year == year {
			return s[i-1].Year, true
		}
	}
	return 0, false
}
