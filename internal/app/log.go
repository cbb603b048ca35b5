package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"webdesk/internal/desk"
)

// deskHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<message>\t<key=value ...>
type deskHandler struct {
	w     io.Writer
	attrs []slog.Attr
}

func (h *deskHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *deskHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	level := r.Level.String()

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s", ts, level, r.Message)
	if err != nil {
		return err
	}

	// Write pre-set attrs.
	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}

	// Write per-record attrs.
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func (h *deskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &deskHandler{
		w:     h.w,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *deskHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger writing to a rotating file in
// logDir and to stderr. The returned closer flushes the rotator.
func newLogger(logDir string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "webdesk.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	w := io.MultiWriter(rotator, os.Stderr)
	handler := &deskHandler{w: w}
	return slog.New(handler), rotator, nil
}

// slogAdapter wraps *slog.Logger to satisfy the desk.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }

var _ desk.Logger = (*slogAdapter)(nil)
