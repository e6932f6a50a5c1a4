package slogger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
	}{
		{"debug level", "debug", LevelDebug},
		{"info level", "info", LevelInfo},
		{"warn level", "warn", LevelWarn},
		{"error level", "error", LevelError},
		{"uppercase", "DEBUG", LevelDebug},
		{"mixed case", "WaRn", LevelWarn},
		{"invalid level", "invalid", DefaultLogLevel},
		{"empty string", "", DefaultLogLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level := LevelFromString(tc.input)
			require.Equal(t, tc.expected, level)
		})
	}
}

func TestDevNullLogger(t *testing.T) {
	logger := NewDevNullLogger()

	// These calls should not panic
	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")

	withLogger := logger.With("context", "value")
	require.NotNil(t, withLogger)
	require.IsType(t, &DevNullLogger{}, withLogger)
}

func TestSlogger(t *testing.T) {
	logger := New(LevelDebug)
	require.NotNil(t, logger)

	// These calls should not panic
	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")

	withLogger := logger.With("context", "value")
	require.NotNil(t, withLogger)
	require.IsType(t, &Slogger{}, withLogger)
}

//nolint:staticcheck // SA1012: Intentionally passing nil context for testing
func TestContextFunctions(t *testing.T) {
	logger := NewDevNullLogger()

	ctx := WithLogger(nil, logger)
	require.NotNil(t, ctx)
	require.Equal(t, logger, Ctx(ctx))

	// Attaching to an existing context
	newCtx := WithLogger(context.Background(), logger)
	require.Equal(t, logger, Ctx(newCtx))

	// A nil or empty context yields a usable fallback logger
	require.IsType(t, &Slogger{}, Ctx(nil))
	require.IsType(t, &Slogger{}, Ctx(context.Background()))
}

func TestDefaultLogger(t *testing.T) {
	require.NotNil(t, DefaultLogger)
	require.IsType(t, &DevNullLogger{}, DefaultLogger)
}
