package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_Accessors(t *testing.T) {
	d := time.Date(2021, 5, 11, 0, 0, 0, 0, time.UTC)
	dataset := &Dataset{
		Header: []string{"record_type", "event_date", "description"},
		Rows: [][]string{
			{"event", "2021-05-11", "Telebirr"},
			{"observation"},
			{"event", "soon", "Planned"},
		},
		Dates: map[string][]*time.Time{ColumnEventDate: {&d, nil, nil}},
	}

	assert.Equal(t, 3, dataset.Len())
	assert.True(t, dataset.HasColumn("description"))
	assert.Equal(t, -1, dataset.ColumnIndex("value"))
	assert.Equal(t, "", dataset.Value(1, "description"), "short rows read as empty")
	assert.Equal(t, "", dataset.Value(9, "description"))
	assert.Equal(t, &d, dataset.Date(0, ColumnEventDate))
	assert.Nil(t, dataset.Date(0, ColumnDate))

	events, err := dataset.Events()
	require.NoError(t, err)
	assert.Equal(t, []Event{{Date: &d, Description: "Telebirr"}, {Description: "Planned"}}, events)
}

func TestDataset_EventsWithoutRecordType(t *testing.T) {
	dataset := &Dataset{Header: []string{"value"}}

	_, err := dataset.Events()
	assert.ErrorContains(t, err, "record_type")
}
