package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "json"}}

	log := NewWithOutput(cfg, &buf)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("dropped")
	log.WithField("session_id", "s-1").Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "s-1", entry["session_id"])
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "chatty", Format: "text"}}
	log := NewWithOutput(cfg, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
