// Package logger provides structured JSON logging with trace-id
// enrichment.
package logger

import (
	"context"
	"io"
	"log/slog"
)

// Level represents the minimum level a logger emits.
type Level slog.Level

// Available logging levels.
const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// TraceIDFn extracts a trace id from the context, returning the empty
// string when no trace is active.
type TraceIDFn func(ctx context.Context) string

// Logger emits structured log records tagged with the service name and
// the current trace id.
type Logger struct {
	log       *slog.Logger
	traceIDFn TraceIDFn
}

// New constructs a logger writing JSON records to w at the given
// minimum level. traceIDFn may be nil.
func New(w io.Writer, minLevel Level, serviceName string, traceIDFn TraceIDFn) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.Level(minLevel)})
	return &Logger{
		log:       slog.New(handler.WithAttrs([]slog.Attr{slog.String("service", serviceName)})),
		traceIDFn: traceIDFn,
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelDebug, msg, args)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelInfo, msg, args)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelWarn, msg, args)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelError, msg, args)
}

func (l *Logger) write(ctx context.Context, level slog.Level, msg string, args []any) {
	if l.traceIDFn != nil {
		if traceID := l.traceIDFn(ctx); traceID != "" {
			args = append(args, "trace_id", traceID)
		}
	}
	l.log.Log(ctx, level, msg, args...)
}
