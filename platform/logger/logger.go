// Package logger provides structured logging with slog for the application.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with application-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger appropriate for the environment.
// Development uses human-readable text output, production uses JSON.
func New(env string) *Logger {
	var handler slog.Handler

	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return &Logger{slog.New(handler)}
}

// With returns a logger with the given attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// HTTPRequest logs an HTTP request with standard fields.
func (l *Logger) HTTPRequest(method, path string, status int, latency time.Duration, clientIP string) {
	l.Info("http request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent logs an authentication-related event.
func (l *Logger) AuthEvent(event, email string, success bool) {
	l.Info("auth event",
		slog.String("event", event),
		slog.String("email", email),
		slog.Bool("success", success),
	)
}

// DatabaseError logs a database error with the operation that failed.
func (l *Logger) DatabaseError(op string, err error) {
	l.Error("database error",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

// TaskEvent logs a background task lifecycle event.
func (l *Logger) TaskEvent(taskType, id string, attrs ...any) {
	args := append([]any{slog.String("task", taskType), slog.String("id", id)}, attrs...)
	l.Info("task event", args...)
}

// WithContext returns the logger stored in ctx, or the receiver if none.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if lg, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return lg
	}
	return l
}

// NewContext returns a context carrying the logger.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

type ctxKey struct{}
