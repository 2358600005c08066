package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01 08:00:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-03-01 08:00:00.250", time.Date(2024, 3, 1, 8, 0, 0, 250_000_000, time.UTC)},
		{"2024-03-01T08:00:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-03-01 08:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2024/03/01 08:00:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"03/01/2024 08:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"3/1/2024 8:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"  2024-03-01 08:00:00  ", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in)
			if assert.NoError(t, err) {
				assert.True(t, tc.want.Equal(got), "expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseTimestamp_WithZone(t *testing.T) {
	got, err := ParseTimestamp("2024-03-01T08:00:00+02:00")
	assert.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2024-13-01 08:00:00", "2024-02-30 08:00:00", "08:00"} {
		got, err := ParseTimestamp(in)
		if err == nil {
			t.Errorf("expected error for %q, got %v", in, got)
		}
		if !got.IsZero() {
			t.Errorf("expected zero time for %q, got %v", in, got)
		}
	}
}

func TestParseTimestamp_MicrosecondPrecision(t *testing.T) {
	for _, in := range []string{"2024-03-01 08:00:00.123456789", "2024-03-01T08:00:00.123456789+00:00"} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.Equal(t, 123456000, got.Nanosecond(), in)
	}
}

func TestFastTimestamp(t *testing.T) {
	ts, ok := fastTimestamp("2025-09-25 06:02:11.086")
	if !ok {
		t.Fatal("expected fast path to accept canonical timestamp")
	}
	if ts.Nanosecond() != 86_000_000 {
		t.Errorf("expected 86ms, got %dns", ts.Nanosecond())
	}

	if _, ok := fastTimestamp("2025-09-25 06:02:11Z"); ok {
		t.Error("expected fast path to defer zone suffixes to time.Parse")
	}
	if _, ok := fastTimestamp("2025-09-25 06:02:1x"); ok {
		t.Error("expected fast path to reject non-digits")
	}
}
