package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergraph/datalog-client-go/datalog/oteladapters"
)

func Test_SlogBridgeLogger_WithHandler_LogsAllLevels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.DebugContext(ctx, "debug message", "query", "[ :find ?e :where [ ?e :doc/id _ ] ]")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message", "error_type", "engine")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "error_type=engine")
}

func Test_SlogBridgeLogger_WithHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.DebugContext(ctx, "suppressed debug")
	logger.WarnContext(ctx, "visible warning")

	output := buf.String()
	assert.NotContains(t, output, "suppressed debug")
	assert.Contains(t, output, "visible warning")
}

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("datalog-client")
	require.NotNil(t, logger)

	// Uses the global LoggerProvider, a no-op by default, so logging must
	// not panic even without OpenTelemetry setup.
	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "no-op provider message")
	})
}
