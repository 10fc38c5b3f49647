package internal

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// NewLogger builds the application logger: JSON with RFC3339Nano timestamps
// in prod, text elsewhere. level accepts slog names ("debug", "INFO",
// "warn+2"); an unknown level falls back to info with a warning. Debug
// logging records the source location.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	lvl, ok := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}

	var h slog.Handler
	if env == "prod" {
		opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				return slog.String(slog.TimeKey, a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		}
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h).With(
		slog.String("service", "shelf"),
		slog.String("env", env),
	)
	if !ok {
		logger.Warn("Invalid log level, using info", slog.String("value", level))
	}
	return logger
}

func parseLevel(level string) (slog.Level, bool) {
	if strings.TrimSpace(level) == "" {
		return slog.LevelInfo, true
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, false
	}
	return lvl, true
}
