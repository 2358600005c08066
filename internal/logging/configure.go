// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// ParseLevel maps a config log level onto zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return zerolog.WarnLevel
	case "":
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Configure installs the global logger writing to out (stdout when nil).
func Configure(level string, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	if out == nil {
		out = os.Stdout
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stdout,
	}

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(ParseLevel(level))
}
