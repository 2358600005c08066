package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/machine-dashboard/backend/internal/activity"
	"github.com/machine-dashboard/backend/internal/models"
)

// ErrNoData is returned by the PNG export when there is nothing to draw.
var ErrNoData = errors.New("no duration data to render")

// namedColors covers the CSS names go-chart does not know.
var namedColors = map[string]string{
	"orangered": "ff4500",
	"gray":      "808080",
	"grey":      "808080",
	"orange":    "ffa500",
	"lightgray": "d3d3d3",
}

// RenderDurationPNG draws the duration chart as a static PNG, one bar per
// (machine, state) total.
func RenderDurationPNG(w io.Writer, records []models.ActivityRecord, theme *models.ChartTheme, width, height int) error {
	totals := activity.Durations(records, theme.StateOrder)
	if len(totals) == 0 {
		return ErrNoData
	}

	bars := make([]gochart.Value, 0, len(totals))
	for _, t := range totals {
		col := toDrawingColor(theme.ColorFor(t.State))
		bars = append(bars, gochart.Value{
			Value: t.Hours,
			Label: fmt.Sprintf("%s %s", t.MachineID, t.State),
			Style: gochart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		})
	}

	bc := gochart.BarChart{
		Title:      durationTitle + " (Hours)",
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     height,
		BarWidth:   40,
		YAxis: gochart.YAxis{
			Name:  "Duration (Hours)",
			Range: yRange(totals),
		},
		Bars: bars,
	}

	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("rendering duration chart: %w", err)
	}
	return nil
}

// yRange pads the bars; go-chart cannot draw a zero-height range.
func yRange(totals []activity.DurationTotal) *gochart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, t := range totals {
		if t.Hours > hi {
			hi = t.Hours
		}
		if t.Hours < lo {
			lo = t.Hours
		}
	}
	if hi == lo {
		hi = 1
	}
	return &gochart.ContinuousRange{Min: lo * 1.1, Max: hi * 1.1}
}

func toDrawingColor(name string) drawing.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if hex, ok := namedColors[name]; ok {
		return drawing.ColorFromHex(hex)
	}
	if strings.HasPrefix(name, "#") && len(name) != 4 && len(name) != 7 {
		return drawing.ColorFromHex(namedColors["gray"])
	}
	if c := drawing.ParseColor(name); !c.IsZero() {
		return c
	}
	return drawing.ColorFromHex(namedColors["gray"])
}
