package utils

import (
	"strings"
	"time"
)

// dateLayouts are tried in order; the first one that parses wins.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
}

// CoerceDate parses a free-form date cell. Empty or unparseable values return nil,
// which is how the dataset marks a missing date.
func CoerceDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}

	return nil
}
