package domain

import (
	"fmt"
	"slices"
	"time"
)

// Columns of the enriched dataset the dashboard reads
const (
	ColumnRecordType      = "record_type"
	ColumnEventDate       = "event_date"
	ColumnDescription     = "description"
	ColumnObservationDate = "observation_date"
	ColumnDate            = "date"

	RecordTypeEvent = "event"
)

// DateColumns are parsed into Dataset.Dates when present
var DateColumns = []string{ColumnObservationDate, ColumnEventDate, ColumnDate}

// Dataset is the enriched CSV held in memory. Cells keep their raw text so the
// table serialises back unchanged; parsed dates live alongside in Dates.
type Dataset struct {
	Header []string
	Rows   [][]string
	// Dates maps a date column to one parsed value per row, nil when the cell is
	// empty or unparseable.
	Dates map[string][]*time.Time
}

// ColumnIndex returns the position of column in the header, or -1
func (d *Dataset) ColumnIndex(column string) int {
	return slices.Index(d.Header, column)
}

func (d *Dataset) HasColumn(column string) bool {
	return d.ColumnIndex(column) >= 0
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Value returns the cell of row i in column, "" when the column is absent or the row is short
func (d *Dataset) Value(i int, column string) string {
	idx := d.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(d.Rows) || idx >= len(d.Rows[i]) {
		return ""
	}
	return d.Rows[i][idx]
}

// Date returns the parsed date of row i in column
func (d *Dataset) Date(i int, column string) *time.Time {
	dates, ok := d.Dates[column]
	if !ok || i < 0 || i >= len(dates) {
		return nil
	}
	return dates[i]
}

// FilterEq returns the indexes of the rows whose column equals value
func (d *Dataset) FilterEq(column, value string) ([]int, error) {
	idx := d.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("dataset has no column %q", column)
	}

	matches := make([]int, 0)
	for i, row := range d.Rows {
		if idx < len(row) && row[idx] == value {
			matches = append(matches, i)
		}
	}
	return matches, nil
}

// Event is a dataset row tagged record_type == "event"
type Event struct {
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description"`
}

// Events returns every event row, in file order. Rows whose event_date did not
// parse keep a nil Date.
func (d *Dataset) Events() ([]Event, error) {
	rows, err := d.FilterEq(ColumnRecordType, RecordTypeEvent)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(rows))
	for _, i := range rows {
		events = append(events, Event{
			Date:        d.Date(i, ColumnEventDate),
			Description: d.Value(i, ColumnDescription),
		})
	}
	return events, nil
}
