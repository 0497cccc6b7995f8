package xlog

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestAntsXLogger_ParentLogLevelChanged(t *testing.T) {
	var logger *AntsXLogger
	logger.Printf("test %d", 123)
	NewAntsXLogger(nil).Printf("test %d", 123)

	parentLogger, buf := newTestLogger(t)
	logger = NewAntsXLogger(parentLogger)

	parentLogger.IncreaseLogLevel(zapcore.ErrorLevel)
	logger.Printf("dropped %d", 1)
	require.Zero(t, buf.Len())

	parentLogger.IncreaseLogLevel(zapcore.DebugLevel)
	logger.Printf("worker exits from panic: %v", "boom")
	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	require.Equal(t, "worker exits from panic: boom", lines[0]["msg"])
	require.Equal(t, "Ants", lines[0]["component"])
	require.Equal(t, "WARN", lines[0]["lvl"])
}
