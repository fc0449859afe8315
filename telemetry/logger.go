// Package telemetry builds the CLI's zerolog logger and serves prometheus
// metrics over HTTP.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mocut/config"
)

// NewLogger builds a timestamped logger from cfg writing to out (stderr when
// nil). Format "console" is human readable; "json" emits one object per line.
func NewLogger(cfg config.LoggingConfig, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("telemetry: log level %q: %w", cfg.Level, err)
	}

	switch cfg.Format {
	case "console", "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("telemetry: unknown log format %q", cfg.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
