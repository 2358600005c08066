package chart

import (
	"time"

	"github.com/samber/lo"

	"github.com/machine-dashboard/backend/internal/activity"
	"github.com/machine-dashboard/backend/internal/models"
)

const (
	timelineTitle = "Machine Activity Timeline"
	defaultWindow = time.Hour
)

// BuildTimeline builds the Gantt-style chart: one horizontal bar per record,
// from Start to End, one trace per state. Records with a missing instant get
// no bar but still bound the axis through whichever instant they have. The
// default visible window is the last hour ending at the latest End; preset
// buttons only relayout the x-axis range.
func BuildTimeline(records []models.ActivityRecord, theme *models.ChartTheme) Figure {
	valid := lo.Filter(records, func(r models.ActivityRecord, _ int) bool { return r.Valid() })
	states := activity.OrderStates(
		lo.Uniq(lo.Map(valid, func(r models.ActivityRecord, _ int) string { return r.State })),
		theme.StateOrder,
	)

	traces := make([]Trace, 0, len(states))
	for _, state := range states {
		rows := lo.Filter(valid, func(r models.ActivityRecord, _ int) bool { return r.State == state })

		base := make([]string, len(rows))
		lengths := make([]float64, len(rows))
		machines := make([]string, len(rows))
		custom := make([][]string, len(rows))
		for i, r := range rows {
			base[i] = r.Start.Format(DateLayout)
			lengths[i] = float64(r.Duration().Milliseconds())
			machines[i] = r.MachineID
			custom[i] = []string{base[i], r.End.Format(DateLayout)}
		}

		traces = append(traces, Trace{
			Type:          "bar",
			Name:          state,
			Orientation:   "h",
			Base:          base,
			X:             lengths,
			Y:             machines,
			Marker:        &Marker{Color: theme.ColorFor(state)},
			LegendGroup:   state,
			CustomData:    custom,
			HoverTemplate: "%{y}<br>Start=%{customdata[0]}<br>End=%{customdata[1]}<extra>" + state + "</extra>",
		})
	}

	fig := Figure{
		Data: traces,
		Layout: Layout{
			Title: &Title{Text: timelineTitle},
			XAxis: &Axis{
				Type:           "date",
				RangeMode:      "tozero",
				ShowSpikes:     true,
				SpikeThickness: 1,
				SpikeSnap:      "cursor",
				ShowLine:       true,
				ShowGrid:       boolPtr(false),
				RangeSlider:    &RangeSlider{Visible: true, Thickness: 0.05, BgColor: "lightgray"},
			},
			YAxis: &Axis{
				Type:       "category",
				AutoRange:  "reversed",
				FixedRange: true,
			},
			BarMode:  "overlay",
			Legend:   &Legend{Title: &Title{Text: "State"}},
			AutoSize: true,
		},
	}

	minStart, maxEnd, ok := activity.Span(records)
	if len(valid) == 0 || !ok {
		fig.Layout.Annotations = []Annotation{noDataAnnotation()}
		return fig
	}

	fig.Layout.XAxis.Range = DefaultWindow(maxEnd).Strings()
	fig.Layout.UpdateMenus = []UpdateMenu{presetMenu(theme.Presets, minStart, maxEnd)}
	return fig
}

// DefaultWindow is the hour ending at maxEnd.
func DefaultWindow(maxEnd time.Time) Window {
	return Window{Start: maxEnd.Add(-defaultWindow), End: maxEnd}
}

// PresetRange resolves a preset window against the data span.
func PresetRange(p models.PresetWindow, minStart, maxEnd time.Time) Window {
	d := time.Duration(p.Hours * float64(time.Hour))
	if p.Anchor == models.AnchorEnd {
		return Window{Start: maxEnd.Add(-d), End: maxEnd}
	}
	return Window{Start: minStart, End: minStart.Add(d)}
}

func presetMenu(presets []models.PresetWindow, minStart, maxEnd time.Time) UpdateMenu {
	buttons := make([]Button, 0, len(presets))
	for _, p := range presets {
		buttons = append(buttons, Button{
			Label:  p.Label,
			Method: "relayout",
			Args:   []any{map[string]any{"xaxis.range": PresetRange(p, minStart, maxEnd).Strings()}},
		})
	}
	return UpdateMenu{
		Type:       "dropdown",
		Buttons:    buttons,
		Direction:  "down",
		ShowActive: false,
		X:          1.025,
		XAnchor:    "left",
		Y:          0.1,
		YAnchor:    "top",
	}
}
