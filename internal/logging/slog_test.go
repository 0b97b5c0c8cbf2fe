package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_LevelsAndAttributes(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "resolving token", "token", "abc")
	log.Info(ctx, "user registered", "email", "bob@example.com")
	log.Warn(ctx, "blob cleanup failed", "ref", "r1")
	log.Error(ctx, "db error", "code", 23505)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "\"resolving token\"", "token=abc"},
		{"INFO", "\"user registered\"", "email=bob@example.com"},
		{"WARN", "\"blob cleanup failed\"", "ref=r1"},
		{"ERROR", "\"db error\"", "code=23505"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected line with level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected line with msg=%s in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.attr) {
			t.Fatalf("expected attribute %s in output:\n%s", tc.attr, out)
		}
	}
}

func TestSlogLogger_With_PropagatesToChildren(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	child := log.With("component", "sessions")
	child.Info(ctx, "store ready", "backend", "redis")

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=\"store ready\"", "component=sessions", "backend=redis"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}
