// Package observabilitytest provides loggers for tests.
package observabilitytest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wandb/regviz/internal/observability"
)

// testWriter forwards each written record to t.Log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// NewTestLogger returns a logger that's captured by the testing framework.
//
// Messages are displayed in the test output on failure.
func NewTestLogger(t *testing.T) *observability.CoreLogger {
	t.Helper()
	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(testWriter{t}, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
		nil,
	)
}

// NewRecordingTestLogger is like NewTestLogger but also returns a buffer
// that captures log messages.
func NewRecordingTestLogger(t *testing.T) (
	*observability.CoreLogger,
	*bytes.Buffer,
) {
	t.Helper()

	recordedLogs := &bytes.Buffer{}
	writer := io.MultiWriter(testWriter{t}, recordedLogs)

	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{})),
		nil,
	), recordedLogs
}

// ExtractLogs extracts structured logs from the [NewRecordingTestLogger]
// buffer.
//
// The "time" key is dropped. Records always contain the "level" and "msg"
// keys plus custom attributes, all rendered as strings.
func ExtractLogs(t *testing.T, buf *bytes.Buffer) []map[string]string {
	t.Helper()
	records := make([]map[string]string, 0)

	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var raw map[string]any
		require.NoError(t, json.Unmarshal(line, &raw))
		delete(raw, "time")

		record := make(map[string]string, len(raw))
		for key, value := range raw {
			switch v := value.(type) {
			case string:
				record[key] = v
			default:
				encoded, err := json.Marshal(v)
				require.NoError(t, err)
				record[key] = string(encoded)
			}
		}
		records = append(records, record)
	}

	return records
}
