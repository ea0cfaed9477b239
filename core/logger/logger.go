package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls handler construction. Zero value produces JSON output
// at info level, suitable for production.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Unknown values
	// fall back to info.
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format is "json" or "text".
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	// AddSource annotates records with file and line of the call site.
	AddSource bool `env:"LOG_ADD_SOURCE" envDefault:"false"`
}

// New builds a slog.Logger writing to w. A nil w defaults to stderr.
func New(cfg Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
