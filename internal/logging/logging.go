package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/navdurga/steeldesk/internal/config"
	"github.com/rs/zerolog"
)

// New creates the diagnostic logger. The TUI owns stdout/stderr, so output
// goes to the configured log file; with no file configured the logger is a
// no-op sink.
func New(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	var w io.Writer = io.Discard
	cleanup := func() {}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), cleanup, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	}

	logger := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return logger, cleanup, nil
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
