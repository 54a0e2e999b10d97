package observability_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/regviz/internal/observability"
	"github.com/wandb/regviz/internal/observabilitytest"
	"github.com/wandb/regviz/internal/sentry_ext"
)

func TestNewTags(t *testing.T) {
	testCases := []struct {
		name   string
		input  []any
		expect observability.Tags
	}{
		{
			name:   "slog.Attr",
			input:  []any{slog.Int64("key1", 123)},
			expect: observability.Tags{"key1": "123"},
		},
		{
			name:   "string and int",
			input:  []any{"key2", 456},
			expect: observability.Tags{"key2": "456"},
		},
		{
			name:   "incomplete pair",
			input:  []any{slog.Int64("key3", 1), "key4"},
			expect: observability.Tags{"key3": "1"},
		},
		{
			name:   "unsupported types skipped",
			input:  []any{map[string]string{"x": "y"}, "key5", "v"},
			expect: observability.Tags{"key5": "v"},
		},
		{
			name:   "empty",
			input:  []any{},
			expect: observability.Tags{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, observability.NewTags(tc.input...))
		})
	}
}

func TestCaptureError_LogsAndReports(t *testing.T) {
	transport := &sentry.MockTransport{}
	client := sentry_ext.New(sentry_ext.Params{Transport: transport})
	require.NotNil(t, client)

	logger, buf := observabilitytest.NewRecordingTestLogger(t)
	logger = observability.NewCoreLogger(
		logger.Logger,
		&observability.CoreLoggerParams{
			Sentry: client,
			Tags:   observability.Tags{"component": "test"},
		},
	)

	logger.CaptureError(errors.New("render failed"), "axis", "x")

	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "ERROR", logs[0]["level"])
	assert.Equal(t, "render failed", logs[0]["msg"])
	assert.Equal(t, "x", logs[0]["axis"])

	events := transport.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "test", events[0].Tags["component"])
	assert.Equal(t, "x", events[0].Tags["axis"])
}

func TestWith_KeepsBaseTags(t *testing.T) {
	logger := observability.NewCoreLogger(
		slog.New(slog.DiscardHandler),
		&observability.CoreLoggerParams{Tags: observability.Tags{"a": "1"}},
	)

	assert.Equal(t, observability.Tags{"a": "1"}, logger.With("b", 2).GetTags())
}
