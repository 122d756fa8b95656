package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.base)
	assert.NotNil(t, logger.sugar)
}

func TestNewWithOptions_JSON(t *testing.T) {
	logger := NewWithOptions("error", false)
	assert.NotNil(t, logger)
	assert.False(t, logger.base.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.base.Core().Enabled(zapcore.ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestLogger_Formatting(t *testing.T) {
	logger := Nop()

	// Test formatting with multiple args
	logger.Info("Post %s archived by %s", "post-1", "staff-1")
	logger.Error("Failed to delete %d records: %s", 2, "timeout")
	logger.Warn("Warning: %s count is %d", "orphans", 5)
	logger.Debug("debug %v", true)

	child := logger.With("collection", "posts")
	child.Info("child logger")
	assert.NotNil(t, child)
}
