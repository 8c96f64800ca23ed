package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"invalid", LevelInfo}, // default
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLevel(tc.input); got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.level.String(); got != tc.expected {
				t.Errorf("Level.String() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"invalid", FormatJSON}, // default
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseFormat(tc.input); got != tc.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	l.Infof("lookup finished", map[string]any{"topic": "events"})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "info" {
		t.Errorf("level = %q, want info", entry.Level)
	}
	if entry.Message != "lookup finished" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Fields["topic"] != "events" {
		t.Errorf("fields = %v", entry.Fields)
	}
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	l.WithCorrelationID("abc-123").Warn("slow lookup")

	out := buf.String()
	if !strings.Contains(out, "[warn]") {
		t.Errorf("missing level marker: %q", out)
	}
	if !strings.Contains(out, "slow lookup") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "correlationId=abc-123") {
		t.Errorf("missing correlation ID: %q", out)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	l.Debug("dropped")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	l.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn message should be written")
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelError, Format: FormatJSON, Output: &buf})

	l.Info("dropped")
	if buf.Len() != 0 {
		t.Error("info should be filtered at error level")
	}

	l.SetLevel(LevelDebug)
	if l.GetLevel() != LevelDebug {
		t.Errorf("GetLevel() = %v", l.GetLevel())
	}
	l.Info("kept")
	if buf.Len() == 0 {
		t.Error("info should pass after SetLevel(debug)")
	}
}

func TestLoggerWithInheritsFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	child := l.With(map[string]any{"topic": "events"}).With(map[string]any{"attempt": 2})
	child.Info("retrying")

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Fields["topic"] != "events" {
		t.Errorf("missing inherited field, fields = %v", entry.Fields)
	}
	if entry.Fields["attempt"] != float64(2) {
		t.Errorf("missing added field, fields = %v", entry.Fields)
	}
}

func TestWithCorrelationIDDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	child := l.WithCorrelationID("chain-1")
	if child.CorrelationID() != "chain-1" {
		t.Errorf("child correlation ID = %q", child.CorrelationID())
	}
	if l.CorrelationID() != "" {
		t.Errorf("parent correlation ID mutated: %q", l.CorrelationID())
	}
}
