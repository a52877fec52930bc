package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRedactsSecretKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug)

	logger.Info("loaded", "infura_api_key", "abc123", "deployer_private_key", "0xdead", "network", "mainnet")

	out := buf.String()
	assert.NotContains(t, out, "abc123")
	assert.NotContains(t, out, "0xdead")
	assert.Contains(t, out, "network=mainnet")
	assert.NotContains(t, out, "time=")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("DERI_LOG_LEVEL", "warn")
	assert.Equal(t, slog.LevelWarn, levelFromEnv(false))
	assert.Equal(t, slog.LevelDebug, levelFromEnv(true))

	t.Setenv("DERI_LOG_LEVEL", "bogus")
	assert.Equal(t, slog.LevelInfo, levelFromEnv(false))
}
