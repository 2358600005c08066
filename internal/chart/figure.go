// Package chart builds declarative Plotly figure specifications for the
// dashboard. Figures are plain values: the browser-side plotting library
// renders them, nothing here draws.
package chart

import "time"

// DateLayout is the wall-clock format Plotly date axes accept.
const DateLayout = "2006-01-02 15:04:05.000"

// NoDataText is shown in place of traces when a selection matches nothing.
const NoDataText = "No data for the current selection"

// Figure is a complete chart: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one series of a figure.
type Trace struct {
	Type          string     `json:"type"`
	Name          string     `json:"name,omitempty"`
	Orientation   string     `json:"orientation,omitempty"`
	X             any        `json:"x"`
	Y             any        `json:"y"`
	Base          []string   `json:"base,omitempty"`
	Marker        *Marker    `json:"marker,omitempty"`
	LegendGroup   string     `json:"legendgroup,omitempty"`
	CustomData    [][]string `json:"customdata,omitempty"`
	HoverTemplate string     `json:"hovertemplate,omitempty"`
}

// Marker carries the trace color.
type Marker struct {
	Color string `json:"color"`
}

// Layout is the figure-level configuration.
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	AutoSize    bool         `json:"autosize"`
}

// Title is a chart, axis or legend title.
type Title struct {
	Text string `json:"text"`
}

// Axis configures one axis. ShowGrid is a pointer because false must be
// sent explicitly to override Plotly's default.
type Axis struct {
	Title          *Title       `json:"title,omitempty"`
	Type           string       `json:"type,omitempty"`
	AutoRange      string       `json:"autorange,omitempty"`
	FixedRange     bool         `json:"fixedrange,omitempty"`
	Range          []string     `json:"range,omitempty"`
	RangeMode      string       `json:"rangemode,omitempty"`
	ShowSpikes     bool         `json:"showspikes,omitempty"`
	SpikeThickness int          `json:"spikethickness,omitempty"`
	SpikeSnap      string       `json:"spikesnap,omitempty"`
	ShowLine       bool         `json:"showline,omitempty"`
	ShowGrid       *bool        `json:"showgrid,omitempty"`
	RangeSlider    *RangeSlider `json:"rangeslider,omitempty"`
}

// RangeSlider is the draggable window selector under a date axis.
type RangeSlider struct {
	Visible   bool    `json:"visible"`
	Thickness float64 `json:"thickness,omitempty"`
	BgColor   string  `json:"bgcolor,omitempty"`
}

// Legend configures the legend box.
type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// UpdateMenu is a dropdown (or button row) of layout actions.
type UpdateMenu struct {
	Type       string   `json:"type,omitempty"`
	Buttons    []Button `json:"buttons"`
	Direction  string   `json:"direction,omitempty"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	XAnchor    string   `json:"xanchor,omitempty"`
	Y          float64  `json:"y"`
	YAnchor    string   `json:"yanchor,omitempty"`
}

// Button is one update menu entry. Method "relayout" applies Args[0] to
// the layout only.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// Annotation is free text placed on the plot.
type Annotation struct {
	Text      string  `json:"text"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ShowArrow bool    `json:"showarrow"`
}

// Window is a visible time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Strings formats the window for a Plotly axis range.
func (w Window) Strings() []string {
	return []string{w.Start.Format(DateLayout), w.End.Format(DateLayout)}
}

func boolPtr(b bool) *bool { return &b }

func noDataAnnotation() Annotation {
	return Annotation{Text: NoDataText, XRef: "paper", YRef: "paper", X: 0.5, Y: 0.5, ShowArrow: false}
}
