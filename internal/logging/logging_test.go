package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sghaida/beans/config"
)

// TestNew_Levels verifies the configured level gates the core.
func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cfg      config.LogConfig
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{config.LogConfig{Level: "debug", Format: "json"}, zapcore.DebugLevel, zapcore.Level(-2)},
		{config.LogConfig{Level: "info", Format: "console"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{config.LogConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{config.LogConfig{Level: "error", Format: ""}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.cfg)
		require.NoError(t, err, "%+v", tt.cfg)
		assert.True(t, logger.Core().Enabled(tt.enabled), "%+v", tt.cfg)
		assert.False(t, logger.Core().Enabled(tt.disabled), "%+v", tt.cfg)
	}
}

// TestNew_Errors verifies bad levels and formats are rejected.
func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"})
	assert.ErrorContains(t, err, `unknown format "xml"`)

	assert.Panics(t, func() { Must(config.LogConfig{Level: "info", Format: "xml"}) })
}

// TestNew_Options verifies zap options are applied.
func TestNew_Options(t *testing.T) {
	t.Parallel()

	logger := Must(config.LogConfig{Level: "info", Format: "json"}, zap.Fields(zap.String("app", "shop")))
	require.NotNil(t, logger)
	assert.NotNil(t, logger.Check(zapcore.InfoLevel, "hello"))
}
