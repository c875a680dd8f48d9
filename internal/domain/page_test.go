package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		input   string
		want    Page
		wantErr bool
	}{
		{input: "", want: PageOverview},
		{input: "Overview", want: PageOverview},
		{input: "trends", want: PageTrends},
		{input: " FORECASTS ", want: PageForecasts},
		{input: "Inclusion Projections", want: PageInclusionProjections},
		{input: "inclusion-projections", want: PageInclusionProjections},
		{input: "settings", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePage(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPagesOrderAndSlugs(t *testing.T) {
	slugs := make([]string, 0, 4)
	for _, p := range Pages() {
		slugs = append(slugs, p.Slug())
	}
	assert.Equal(t, []string{"overview", "trends", "forecasts", "inclusion-projections"}, slugs)
}

func TestPageView_Figures(t *testing.T) {
	view := PageView{Sections: []Section{
		{Subheader: "first", Figure: NewLineFigure("a", "")},
		{Subheader: "text only"},
		{Figure: NewLineFigure("b", "")},
	}}

	figures := view.Figures()
	require.Len(t, figures, 2)
	assert.Equal(t, "a", figures[0].ID)
	assert.Equal(t, "b", figures[1].ID)
}
