package logging

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfigure(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	Configure("warn", &buf)

	log.Info().Msg("hidden")
	log.Warn().Err(errors.New("disk gone")).Str("path", "a.csv").Msg("reload failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "reload failed")
	assert.Contains(t, out, "path=a.csv")
	assert.Contains(t, out, "disk gone")
}
