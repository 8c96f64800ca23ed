package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := WithCorrelationIDCtx(context.Background(), "req-42")
	if got := CorrelationIDFromCtx(ctx); got != "req-42" {
		t.Errorf("CorrelationIDFromCtx = %q, want req-42", got)
	}
	if got := CorrelationIDFromCtx(context.Background()); got != "" {
		t.Errorf("empty context should have no correlation ID, got %q", got)
	}
}

func TestLoggerCtxRoundTrip(t *testing.T) {
	l := DefaultLogger()
	ctx := WithLoggerCtx(context.Background(), l)
	if got := LoggerFromCtx(ctx); got != l {
		t.Error("LoggerFromCtx should return the attached logger")
	}
	if got := LoggerFromCtx(context.Background()); got != nil {
		t.Error("LoggerFromCtx on empty context should be nil")
	}
}

func TestContextLoggerAppliesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	ctx := WithCorrelationIDCtx(context.Background(), "chain-7")
	ContextLogger(ctx, base).Info("hop")

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.CorrelationID != "chain-7" {
		t.Errorf("correlationId = %q, want chain-7", entry.CorrelationID)
	}
}

func TestContextLoggerPrefersContextLogger(t *testing.T) {
	var ctxBuf, baseBuf bytes.Buffer
	inCtx := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &ctxBuf})
	base := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &baseBuf})

	ctx := WithLoggerCtx(context.Background(), inCtx)
	ContextLogger(ctx, base).Info("routed")

	if ctxBuf.Len() == 0 {
		t.Error("context logger should receive the message")
	}
	if baseBuf.Len() != 0 {
		t.Error("base logger should not receive the message")
	}
}

func TestContextLoggerFallsBackToGlobal(t *testing.T) {
	if got := ContextLogger(context.Background(), nil); got == nil {
		t.Error("ContextLogger should never return nil")
	}
}
