package domain

// Figure is a render-ready chart. Field names follow the plotly.js figure
// schema so the browser can draw it with Plotly.newPlot(el, data, layout).
type Figure struct {
	ID     string  `json:"id"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

const (
	ModeLinesMarkers = "lines+markers"
	DashDashed       = "dash"
)

type Trace struct {
	Type string    `json:"type"`
	Mode string    `json:"mode"`
	Name string    `json:"name,omitempty"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

type Text struct {
	Text string `json:"text"`
}

type Layout struct {
	Title       *Text        `json:"title,omitempty"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	ShowLegend  bool         `json:"showlegend"`
}

type Axis struct {
	Title      *Text     `json:"title,omitempty"`
	Range      []float64 `json:"range,omitempty"`
	TickSuffix string    `json:"ticksuffix,omitempty"`
}

// Shape is a reference line. "paper" coordinates span the whole plot area (0..1).
type Shape struct {
	Type string    `json:"type"`
	XRef string    `json:"xref"`
	YRef string    `json:"yref"`
	X0   float64   `json:"x0"`
	X1   float64   `json:"x1"`
	Y0   float64   `json:"y0"`
	Y1   float64   `json:"y1"`
	Line ShapeLine `json:"line"`
}

type ShapeLine struct {
	Color string `json:"color,omitempty"`
	Dash  string `json:"dash,omitempty"`
	Width int    `json:"width,omitempty"`
}

type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	XAnchor   string  `json:"xanchor,omitempty"`
	YAnchor   string  `json:"yanchor,omitempty"`
	ShowArrow bool    `json:"showarrow"`
}

// NewLineFigure returns an empty line chart; title may be empty
func NewLineFigure(id, title string) *Figure {
	f := &Figure{
		ID:   id,
		Data: []Trace{},
	}
	if title != "" {
		f.Layout.Title = &Text{Text: title}
	}
	return f
}

// AddLine appends a lines+markers trace
func (f *Figure) AddLine(name string, x, y []float64) *Figure {
	f.Data = append(f.Data, Trace{
		Type: "scatter",
		Mode: ModeLinesMarkers,
		Name: name,
		X:    x,
		Y:    y,
	})
	f.Layout.ShowLegend = len(f.Data) > 1
	return f
}

// PercentYAxis fixes the y axis to 0..100 with a "%" tick suffix
func (f *Figure) PercentYAxis() *Figure {
	f.Layout.YAxis.Range = []float64{0, 100}
	f.Layout.YAxis.TickSuffix = "%"
	return f
}

func (f *Figure) XRange(from, to float64) *Figure {
	f.Layout.XAxis.Range = []float64{from, to}
	return f
}

func (f *Figure) Titles(x, y string) *Figure {
	if x != "" {
		f.Layout.XAxis.Title = &Text{Text: x}
	}
	if y != "" {
		f.Layout.YAxis.Title = &Text{Text: y}
	}
	return f
}

// AddVLine draws a dashed vertical line at x spanning the plot height, labelled at the top
func (f *Figure) AddVLine(x float64, label string) *Figure {
	f.Layout.Shapes = append(f.Layout.Shapes, Shape{
		Type: "line",
		XRef: "x",
		YRef: "paper",
		X0:   x,
		X1:   x,
		Y0:   0,
		Y1:   1,
		Line: ShapeLine{Dash: DashDashed, Width: 1},
	})
	if label != "" {
		f.Layout.Annotations = append(f.Layout.Annotations, Annotation{
			Text:    label,
			X:       x,
			Y:       1,
			XRef:    "x",
			YRef:    "paper",
			XAnchor: "left",
			YAnchor: "bottom",
		})
	}
	return f
}

// AddHLine draws a dashed horizontal line at y spanning the plot width, labelled top right
func (f *Figure) AddHLine(y float64, label, color string) *Figure {
	f.Layout.Shapes = append(f.Layout.Shapes, Shape{
		Type: "line",
		XRef: "paper",
		YRef: "y",
		X0:   0,
		X1:   1,
		Y0:   y,
		Y1:   y,
		Line: ShapeLine{Color: color, Dash: DashDashed, Width: 2},
	})
	if label != "" {
		f.Layout.Annotations = append(f.Layout.Annotations, Annotation{
			Text:    label,
			X:       1,
			Y:       y,
			XRef:    "paper",
			YRef:    "y",
			XAnchor: "right",
			YAnchor: "bottom",
		})
	}
	return f
}
