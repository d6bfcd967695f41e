// Package logger builds the slog logger used by the command-line tools.
package logger

import (
	"io"
	"log/slog"
	"time"
)

// Config selects the handler and level.
type Config struct {
	Debug bool // log at debug level and include source locations
	JSON  bool // emit JSON instead of text records
}

// New returns a logger writing to w. A nil w discards every record.
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		return Discard()
	}

	level := slog.LevelInfo
	addSource := false

	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   addSource,
		ReplaceAttr: utcTime,
	}

	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops all records.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}

	return a
}
