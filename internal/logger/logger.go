package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var once sync.Once

// Init configures the process-wide slog logger with a JSON handler writing to
// stdout. Safe to call more than once; only the first call takes effect.
func Init(level string) {
	once.Do(func() {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level),
		})
		slog.SetDefault(slog.New(handler))
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
