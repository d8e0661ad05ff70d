package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func parseLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\noutput: %s", err, buf.String())
	}
	return entry
}

func TestLogger_BasicEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "sync complete", Field{Key: "count", Value: 3})

	entry := parseLogLine(t, &buf)
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["msg"] != "sync complete" {
		t.Errorf("msg = %v, want 'sync complete'", entry["msg"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entry["count"])
	}
	if entry["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	scoped := logger.With(
		Field{Key: "op.name", Value: "fetch_quote"},
		Field{Key: "op.component", Value: "httpclient"},
	)
	scoped.Info(context.Background(), "done")

	entry := parseLogLine(t, &buf)
	if entry["op.name"] != "fetch_quote" {
		t.Errorf("op.name = %v, want fetch_quote", entry["op.name"])
	}
	if entry["op.component"] != "httpclient" {
		t.Errorf("op.component = %v, want httpclient", entry["op.component"])
	}
}

func TestLogger_WithDoesNotAffectParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	_ = logger.With(Field{Key: "scoped", Value: true})
	logger.Info(context.Background(), "parent entry")

	entry := parseLogLine(t, &buf)
	if _, ok := entry["scoped"]; ok {
		t.Error("parent logger picked up a scoped field")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Debug(context.Background(), "debug message")
	logger.Info(context.Background(), "info message")
	if buf.Len() != 0 {
		t.Fatalf("below-threshold entries were written: %s", buf.String())
	}

	logger.Warn(context.Background(), "warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Error("warn entry missing at warn level")
	}
}

func TestLogger_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Error(context.Background(), "sync failed", Field{Key: "error", Value: "connection timeout"})

	entry := parseLogLine(t, &buf)
	if entry["level"] != "error" {
		t.Errorf("level = %v, want error", entry["level"])
	}
	if entry["error"] != "connection timeout" {
		t.Errorf("error = %v, want 'connection timeout'", entry["error"])
	}
}

func TestLogger_RedactsSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "request sent",
		Field{Key: "token", Value: "eyJhbGciOi-very-secret"},
		Field{Key: "password", Value: "hunter2"},
		Field{Key: "path", Value: "/v1/quotes"},
	)

	output := buf.String()
	if strings.Contains(output, "very-secret") || strings.Contains(output, "hunter2") {
		t.Fatalf("sensitive values leaked: %s", output)
	}

	entry := parseLogLine(t, &buf)
	if entry["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", entry["token"])
	}
	if entry["path"] != "/v1/quotes" {
		t.Errorf("path = %v, want /v1/quotes", entry["path"])
	}
}

func TestLogger_RedactsAttachedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	scoped := logger.With(Field{Key: "authorization", Value: "Bearer abc"})
	scoped.Info(context.Background(), "entry")

	entry := parseLogLine(t, &buf)
	if entry["authorization"] != "[REDACTED]" {
		t.Errorf("authorization = %v, want [REDACTED]", entry["authorization"])
	}
}

func TestLogger_DefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("", &buf)

	logger.Debug(context.Background(), "debug message")
	if buf.Len() != 0 {
		t.Error("debug entry written at default level")
	}

	logger.Info(context.Background(), "info message")
	if buf.Len() == 0 {
		t.Error("info entry not written at default level")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
