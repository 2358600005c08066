package models

import "time"

// ActivityTable represents the result of loading an activity CSV.
type ActivityTable struct {
	Records     []ActivityRecord `json:"records"`
	ParseErrors []ParseError     `json:"parseErrors,omitempty"`
	TimeRange   *TimeRange       `json:"timeRange,omitempty"`
	SourcePath  string           `json:"sourcePath,omitempty"`
}

// TimeRange represents a time window.
type TimeRange struct {
	Start time.Time `json:"start" msgpack:"start"`
	End   time.Time `json:"end" msgpack:"end"`
}

// ParseError represents a problem with a single CSV line. Timestamp errors
// are non-fatal: the row is kept with a zero instant.
type ParseError struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

// NewActivityTable creates a new empty ActivityTable.
func NewActivityTable(sourcePath string) *ActivityTable {
	return &ActivityTable{
		Records:     make([]ActivityRecord, 0),
		ParseErrors: make([]ParseError, 0),
		SourcePath:  sourcePath,
	}
}

// Len returns the number of records.
func (t *ActivityTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
