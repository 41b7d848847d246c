package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, nil))), buf
}

func TestSlogLogger_WritesStructuredRecord(t *testing.T) {
	t.Parallel()

	logger, buf := newBufferLogger()
	logger.Info(context.Background(), "hello", "key", "value")

	record := map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %q", buf.String())
	}
	if record["msg"] != "hello" || record["key"] != "value" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	t.Parallel()

	logger, buf := newBufferLogger()
	child := logger.With("component", "httpapi")
	child.Error(context.Background(), "boom")

	record := map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %q", buf.String())
	}
	if record["component"] != "httpapi" || record["level"] != "ERROR" {
		t.Fatalf("unexpected record: %v", record)
	}
}
