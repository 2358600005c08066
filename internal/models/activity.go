// Package models contains domain types for the machine activity dashboard.
package models

import "time"

// State labels seen in activity logs. The set is open; these are the ones
// the default chart theme knows how to color.
const (
	StateWorking = "Working"
	StateIdle    = "Idle"
	StateStopped = "Stopped"
)

// ActivityRecord represents one row of the activity CSV.
type ActivityRecord struct {
	MachineID string    `json:"machineId" msgpack:"machineId"`
	State     string    `json:"state" msgpack:"state"`
	StartRaw  string    `json:"startTime" msgpack:"startTime"`
	EndRaw    string    `json:"endTime" msgpack:"endTime"`
	Start     time.Time `json:"start" msgpack:"start"` // zero when StartRaw did not parse
	End       time.Time `json:"end" msgpack:"end"`     // zero when EndRaw did not parse
	Line      int       `json:"line,omitempty" msgpack:"line,omitempty"`
}

// Valid reports whether both instants were parsed.
func (r ActivityRecord) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Duration returns End - Start, or 0 when either instant is missing.
func (r ActivityRecord) Duration() time.Duration {
	if !r.Valid() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// DurationHours returns the record duration in hours.
func (r ActivityRecord) DurationHours() float64 {
	return r.Duration().Seconds() / 3600
}
