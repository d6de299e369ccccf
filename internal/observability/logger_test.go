package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"neuropath/internal/tester"
)

func TestParseLevel(t *testing.T) {
	tester.Eq(t, ParseLevel("DEBUG"), slog.LevelDebug)
	tester.Eq(t, ParseLevel("warning"), slog.LevelWarn)
	tester.Eq(t, ParseLevel("error"), slog.LevelError)
	tester.Eq(t, ParseLevel("verbose"), slog.LevelInfo)
}

func TestLoggerFromContextAddsTurn(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "json", nil)

	LoggerFromContext(WithTurn(context.Background(), "adapt-7"), base).Info("hello")

	var rec map[string]any
	tester.NoErr(t, json.Unmarshal(buf.Bytes(), &rec))
	tester.Eq(t, rec["turn"], any("adapt-7"))
	tester.Eq(t, rec["msg"], any("hello"))
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuropath.log")
	logger, closer, err := NewLogger(Options{Level: "info", Format: "text", Output: path})
	tester.NoErr(t, err)
	logger.Info("started")
	tester.NoErr(t, closer.Close())
}
