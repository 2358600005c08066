package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/machine-dashboard/backend/internal/models"
)

// Parser defines the interface for activity log parsers.
type Parser interface {
	// Name returns the unique name of the parser.
	Name() string
	// CanParse returns true if this parser can handle the given file.
	CanParse(filePath string) (bool, error)
	// Parse parses the entire file and returns the loaded table.
	Parse(filePath string) (*models.ActivityTable, error)
}

// timestampLayouts are tried in order after the fast path fails.
// Zone-less layouts are interpreted as UTC.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006/01/02 15:04:05.999999999",
	"2006/01/02 15:04",
	"01/02/2006 15:04:05.999999999",
	"01/02/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseTimestamp converts a textual timestamp into a UTC instant with
// microsecond precision, the finest both store engines keep. It returns the
// zero time and an error when no known layout matches.
func ParseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if ts, ok := fastTimestamp(s); ok {
		return ts.Truncate(time.Microsecond), nil
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

// fastTimestamp parses "YYYY-MM-DD HH:MM:SS[.fff]" without going through
// time.Parse. A 'T' separator is accepted too.
func fastTimestamp(ts string) (time.Time, bool) {
	if len(ts) < 19 {
		return time.Time{}, false
	}
	if ts[4] != '-' || ts[7] != '-' || (ts[10] != ' ' && ts[10] != 'T') || ts[13] != ':' || ts[16] != ':' {
		return time.Time{}, false
	}

	year := parseInt4(ts[0:4])
	month := parseInt2(ts[5:7])
	day := parseInt2(ts[8:10])
	hour := parseInt2(ts[11:13])
	min := parseInt2(ts[14:16])
	sec := parseInt2(ts[17:19])

	if year < 0 || month < 1 || month > 12 || day < 1 || day > 31 ||
		hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 59 {
		return time.Time{}, false
	}

	var nsec int
	switch {
	case len(ts) == 19:
	case len(ts) > 20 && ts[19] == '.':
		frac := ts[20:]
		fracLen := len(frac)
		if fracLen > 9 {
			return time.Time{}, false
		}
		nsec = parseIntN(frac, fracLen)
		if nsec < 0 {
			return time.Time{}, false
		}
		for i := fracLen; i < 9; i++ {
			nsec *= 10
		}
	default:
		// trailing zone or garbage, let time.Parse decide
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, min, sec, nsec, time.UTC)
	// time.Date normalizes Feb 30 into March; reject instead.
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// parseInt2 parses a 2-digit decimal string. Returns -1 on error.
func parseInt2(s string) int {
	if len(s) != 2 {
		return -1
	}
	d1, d2 := s[0]-'0', s[1]-'0'
	if d1 > 9 || d2 > 9 {
		return -1
	}
	return int(d1)*10 + int(d2)
}

// parseInt4 parses a 4-digit decimal string. Returns -1 on error.
func parseInt4(s string) int {
	if len(s) != 4 {
		return -1
	}
	d1, d2, d3, d4 := s[0]-'0', s[1]-'0', s[2]-'0', s[3]-'0'
	if d1 > 9 || d2 > 9 || d3 > 9 || d4 > 9 {
		return -1
	}
	return int(d1)*1000 + int(d2)*100 + int(d3)*10 + int(d4)
}

// parseIntN parses an n-digit decimal string. Returns -1 on error.
func parseIntN(s string, n int) int {
	result := 0
	for i := 0; i < n; i++ {
		d := s[i] - '0'
		if d > 9 {
			return -1
		}
		result = result*10 + int(d)
	}
	return result
}
