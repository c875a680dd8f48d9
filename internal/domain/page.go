package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Page is one entry of the sidebar selector
type Page string

const (
	PageOverview             Page = "Overview"
	PageTrends               Page = "Trends"
	PageForecasts            Page = "Forecasts"
	PageInclusionProjections Page = "Inclusion Projections"
)

var ErrUnknownPage = errors.New("unknown page")

// Pages lists the sidebar entries in display order
func Pages() []Page {
	return []Page{PageOverview, PageTrends, PageForecasts, PageInclusionProjections}
}

// Slug is the URL form of the page name, e.g. "inclusion-projections"
func (p Page) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(p)), " ", "-")
}

// ParsePage accepts a page name or slug in any case; empty selects Overview
func ParsePage(value string) (Page, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return PageOverview, nil
	}
	for _, p := range Pages() {
		if strings.EqualFold(value, string(p)) || strings.EqualFold(value, p.Slug()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, value)
}

// Metric is a KPI tile: a label, a headline value and an optional delta caption
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// TextBlock is a titled paragraph or bullet list
type TextBlock struct {
	Title   string   `json:"title,omitempty"`
	Body    string   `json:"body,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertError   AlertLevel = "error"
)

type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

type DownloadLink struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
}

// Section groups a subheader with the figure drawn under it
type Section struct {
	Subheader string  `json:"subheader,omitempty"`
	Figure    *Figure `json:"figure,omitempty"`
}

// PageView is everything needed to render one page
type PageView struct {
	Page      Page          `json:"page"`
	Slug      string        `json:"slug"`
	Header    string        `json:"header"`
	Metrics   []Metric      `json:"metrics,omitempty"`
	Alerts    []Alert       `json:"alerts,omitempty"`
	Sections  []Section     `json:"sections,omitempty"`
	Blocks    []TextBlock   `json:"blocks,omitempty"`
	Scenario  Scenario      `json:"scenario,omitempty"`
	Scenarios []Scenario    `json:"scenarios,omitempty"`
	Download  *DownloadLink `json:"download,omitempty"`
}

// Figures returns the figures of every section, in order
func (v *PageView) Figures() []*Figure {
	figures := make([]*Figure, 0, len(v.Sections))
	for _, s := range v.Sections {
		if s.Figure != nil {
			figures = append(figures, s.Figure)
		}
	}
	return figures
}

// MenuItem is a sidebar link
type MenuItem struct {
	Page   Page   `json:"page"`
	Slug   string `json:"slug"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// DatasetStatus describes the loaded dataset snapshot
type DatasetStatus struct {
	Path     string    `json:"path"`
	Version  string    `json:"version,omitempty"`
	Rows     int       `json:"rows"`
	Columns  int       `json:"columns"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Error    string    `json:"error,omitempty"`
}
