package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOffReturnsNop(t *testing.T) {
	log, err := New(Config{Level: "off"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if log.Core().Enabled(-1) {
		t.Fatal("expected no-op core")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskpager.log")
	log, err := New(Config{Level: "debug", Encoding: "json", Path: path})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	ctx := ContextWithRequestID(context.Background(), "req-42")
	WithRequestID(ctx, log).Info("page fetched")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, `"msg":"page fetched"`) || !strings.Contains(out, `"request_id":"req-42"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestWithRequestIDNilBase(t *testing.T) {
	if WithRequestID(context.Background(), nil) == nil {
		t.Fatal("expected non-nil logger")
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Fatal("expected empty request id")
	}
}
