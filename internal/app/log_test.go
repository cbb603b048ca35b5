package app

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestDeskHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			level:   slog.LevelInfo,
			message: "item renamed",
			want:    "2024-06-15T14:30:45Z\tINFO\titem renamed\n",
		},
		{
			name:    "warn level",
			level:   slog.LevelWarn,
			message: "command rejected",
			want:    "2024-06-15T14:30:45Z\tWARN\tcommand rejected\n",
		},
		{
			name:    "with record attrs",
			level:   slog.LevelInfo,
			message: "moved",
			attrs:   []slog.Attr{slog.String("item", "report.txt"), slog.Int("count", 3)},
			want:    "2024-06-15T14:30:45Z\tINFO\tmoved\titem=report.txt\tcount=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &deskHandler{w: &buf}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestDeskHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &deskHandler{w: &buf}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "server")}).(*deskHandler)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "login", 0)
	r.AddAttrs(slog.String("user", "admin"))

	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "component=server") {
		t.Errorf("expected pre-set attr component=server, got: %q", got)
	}
	if !strings.Contains(got, "user=admin") {
		t.Errorf("expected record attr user=admin, got: %q", got)
	}
}

func TestDeskHandler_WithAttrs_doesNotMutateOriginal(t *testing.T) {
	var buf bytes.Buffer
	h := &deskHandler{w: &buf, attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("b", "2")}).(*deskHandler)

	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}
	if len(h2.attrs) != 2 {
		t.Errorf("new handler attrs: got %d, want 2", len(h2.attrs))
	}
}

func TestDeskHandler_Enabled(t *testing.T) {
	h := &deskHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if !h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = false, want true", level)
		}
	}
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()

	logger, closer, err := newLogger(dir)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer closer.Close()

	if logger == nil {
		t.Fatal("newLogger() returned nil logger")
	}
}
