package activity

import (
	"github.com/samber/lo"

	"github.com/machine-dashboard/backend/internal/models"
)

// DurationTotal is the summed duration of one state on one machine.
type DurationTotal struct {
	MachineID string  `json:"machineId" msgpack:"machineId"`
	State     string  `json:"state" msgpack:"state"`
	Hours     float64 `json:"hours" msgpack:"hours"`
	Records   int     `json:"records" msgpack:"records"`
}

// Durations sums record durations (hours) per (machine, state). Records
// with a missing instant are skipped. Machines keep first-appearance order;
// within a machine states follow stateOrder, then first appearance.
func Durations(records []models.ActivityRecord, stateOrder []string) []DurationTotal {
	valid := lo.Filter(records, func(r models.ActivityRecord, _ int) bool { return r.Valid() })

	machines := lo.Uniq(lo.Map(valid, func(r models.ActivityRecord, _ int) string { return r.MachineID }))
	states := OrderStates(lo.Uniq(lo.Map(valid, func(r models.ActivityRecord, _ int) string { return r.State })), stateOrder)

	type key struct{ machine, state string }
	totals := make(map[key]*DurationTotal)
	for _, r := range valid {
		k := key{r.MachineID, r.State}
		t, ok := totals[k]
		if !ok {
			t = &DurationTotal{MachineID: r.MachineID, State: r.State}
			totals[k] = t
		}
		t.Hours += r.DurationHours()
		t.Records++
	}

	out := make([]DurationTotal, 0, len(totals))
	for _, m := range machines {
		for _, s := range states {
			if t, ok := totals[key{m, s}]; ok {
				out = append(out, *t)
			}
		}
	}
	return out
}

// OrderStates sorts observed state labels by their position in preferred;
// labels not listed there keep their relative order at the end.
func OrderStates(observed, preferred []string) []string {
	out := make([]string, 0, len(observed))
	seen := make(map[string]struct{}, len(observed))
	present := lo.Associate(observed, func(s string) (string, struct{}) { return s, struct{}{} })

	for _, s := range preferred {
		if _, ok := present[s]; ok {
			if _, dup := seen[s]; !dup {
				out = append(out, s)
				seen[s] = struct{}{}
			}
		}
	}
	for _, s := range observed {
		if _, ok := seen[s]; !ok {
			out = append(out, s)
			seen[s] = struct{}{}
		}
	}
	return out
}
