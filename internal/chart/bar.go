package chart

import (
	"github.com/samber/lo"

	"github.com/machine-dashboard/backend/internal/activity"
	"github.com/machine-dashboard/backend/internal/models"
)

const durationTitle = "Machine State Duration"

// BuildDurationBar builds the per-machine duration chart: hours summed per
// (machine, state), one colored trace per state, stacked.
func BuildDurationBar(records []models.ActivityRecord, theme *models.ChartTheme) Figure {
	totals := activity.Durations(records, theme.StateOrder)
	states := lo.Uniq(lo.Map(totals, func(t activity.DurationTotal, _ int) string { return t.State }))
	states = activity.OrderStates(states, theme.StateOrder)

	traces := make([]Trace, 0, len(states))
	for _, state := range states {
		rows := lo.Filter(totals, func(t activity.DurationTotal, _ int) bool { return t.State == state })
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          state,
			X:             lo.Map(rows, func(t activity.DurationTotal, _ int) string { return t.MachineID }),
			Y:             lo.Map(rows, func(t activity.DurationTotal, _ int) float64 { return t.Hours }),
			Marker:        &Marker{Color: theme.ColorFor(state)},
			LegendGroup:   state,
			HoverTemplate: "Machine ID=%{x}<br>Duration (Hours)=%{y:.2f}<extra>" + state + "</extra>",
		})
	}

	fig := Figure{
		Data: traces,
		Layout: Layout{
			Title:    &Title{Text: durationTitle},
			XAxis:    &Axis{Title: &Title{Text: "Machine ID"}, Type: "category"},
			YAxis:    &Axis{Title: &Title{Text: "Duration (Hours)"}},
			BarMode:  "relative",
			Legend:   &Legend{Title: &Title{Text: "State"}},
			AutoSize: true,
		},
	}
	if len(totals) == 0 {
		fig.Layout.Annotations = []Annotation{noDataAnnotation()}
	}
	return fig
}
