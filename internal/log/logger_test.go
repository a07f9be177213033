package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/helixml/bitext/internal/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []config.LogFormat{config.LogFormatPretty, config.LogFormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			cfg := config.NewAppConfigWithOptions(
				config.WithLogLevel("DEBUG"),
				config.WithLogFormat(format),
			)

			logger := NewLogger(cfg)
			if logger == nil || logger.Slog() == nil || logger.Handler() == nil {
				t.Fatal("NewLogger should return a usable logger")
			}
		})
	}
}

func TestLogger_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 log lines, got %d", len(lines))
	}

	for i, line := range lines {
		var data map[string]any
		if err := json.Unmarshal([]byte(line), &data); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.With("component", "catalog").Info("test message")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if data["component"] != "catalog" {
		t.Errorf("expected component=catalog, got %v", data["component"])
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithCorrelationID(context.Background(), "corr-123")
	ctx = WithCorpus(ctx, "europarl")

	logger.InfoContext(ctx, "test message")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if data["correlation_id"] != "corr-123" {
		t.Errorf("expected correlation_id=corr-123, got %v", data["correlation_id"])
	}
	if data["corpus"] != "europarl" {
		t.Errorf("expected corpus=europarl, got %v", data["corpus"])
	}
}

func TestLogger_WithContext_NoContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext without values should return the same logger")
	}

	logger.ErrorContext(context.Background(), "test message")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if _, ok := data["correlation_id"]; ok {
		t.Error("should not have correlation_id when not set")
	}
}

func TestNewCorrelationID(t *testing.T) {
	ctx := NewCorrelationID(context.Background())

	id := CorrelationID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("CorrelationID() = %q, want a UUID: %v", id, err)
	}
	if CorrelationID(NewCorrelationID(context.Background())) == id {
		t.Error("NewCorrelationID should generate a fresh id")
	}
}

func TestContextValues_NotSet(t *testing.T) {
	ctx := context.Background()
	if CorrelationID(ctx) != "" {
		t.Error("CorrelationID() should be empty when not set")
	}
	if Corpus(ctx) != "" {
		t.Error("Corpus() should be empty when not set")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if level := parseLevel(tt.input); level != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := config.NewAppConfigWithOptions(config.WithLogFormat(config.LogFormatJSON))
	logger := Configure(cfg)

	if slog.Default() != logger.Slog() {
		t.Error("Configure() should install the logger as the slog default")
	}
}

func TestFromSlog(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	logger := FromSlog(base)
	logger.InfoContext(WithCorpus(context.Background(), "wmt"), "wrapped")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if data["corpus"] != "wmt" {
		t.Errorf("expected corpus=wmt, got %v", data["corpus"])
	}
	if logger.Slog() != base {
		t.Error("FromSlog should keep the wrapped logger")
	}
}
