// Package activity holds the pure transformations over activity records:
// option discovery, the (machine, state) filter, and duration aggregation.
package activity

import (
	"time"

	"github.com/samber/lo"

	"github.com/machine-dashboard/backend/internal/models"
)

// Options returns the distinct machine ids and state labels, in order of
// first appearance.
func Options(records []models.ActivityRecord) models.FilterOptions {
	return models.FilterOptions{
		Machines: lo.Uniq(lo.Map(records, func(r models.ActivityRecord, _ int) string { return r.MachineID })),
		States:   lo.Uniq(lo.Map(records, func(r models.ActivityRecord, _ int) string { return r.State })),
	}
}

// DefaultSelection fills an empty machine or state with the first option.
// Values that are not among the options are kept as-is; they select nothing.
func DefaultSelection(opts models.FilterOptions, requested models.Selection) models.Selection {
	sel := requested
	if sel.Machine == "" && len(opts.Machines) > 0 {
		sel.Machine = opts.Machines[0]
	}
	if sel.State == "" && len(opts.States) > 0 {
		sel.State = opts.States[0]
	}
	return sel
}

// Matches reports whether a record satisfies both equality predicates.
func Matches(r models.ActivityRecord, sel models.Selection) bool {
	return (r.MachineID == sel.Machine) && (r.State == sel.State)
}

// Filter returns the records whose MachineID equals sel.Machine and whose
// State equals sel.State. The result never aliases the input slice.
func Filter(records []models.ActivityRecord, sel models.Selection) []models.ActivityRecord {
	out := lo.Filter(records, func(r models.ActivityRecord, _ int) bool {
		return Matches(r, sel)
	})
	if out == nil {
		out = []models.ActivityRecord{}
	}
	return out
}

// Span returns the earliest parsed Start and the latest parsed End. Each
// bound is taken over its own column, so a row with only one good instant
// still counts toward that bound. ok is false when either bound is missing.
func Span(records []models.ActivityRecord) (minStart, maxEnd time.Time, ok bool) {
	var hasStart, hasEnd bool
	for _, r := range records {
		if !r.Start.IsZero() && (!hasStart || r.Start.Before(minStart)) {
			minStart = r.Start
			hasStart = true
		}
		if !r.End.IsZero() && (!hasEnd || r.End.After(maxEnd)) {
			maxEnd = r.End
			hasEnd = true
		}
	}
	return minStart, maxEnd, hasStart && hasEnd
}

// AnyValid reports whether at least one record has both instants.
func AnyValid(records []models.ActivityRecord) bool {
	return lo.ContainsBy(records, func(r models.ActivityRecord) bool { return r.Valid() })
}
