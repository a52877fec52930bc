package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/google/wire"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// secretKeyFragments mark attribute keys whose values are never written
var secretKeyFragments = []string{"private_key", "privatekey", "api_key", "apikey", "secret", "password", "mnemonic"}

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	logger := New(os.Stderr, levelFromEnv(cfg.Debug))
	slog.SetDefault(logger)
	return logger
}

// New builds the text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time for cleaner CLI output
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			if isSecretKey(a.Key) {
				return slog.String(a.Key, "***")
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func levelFromEnv(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(os.Getenv("DERI_LOG_LEVEL")) {
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

func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, fragment := range secretKeyFragments {
		if strings.Contains(k, fragment) {
			return true
		}
	}
	return false
}
