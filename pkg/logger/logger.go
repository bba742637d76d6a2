package logger

import (
	"context"
	"log/slog"
	"os"
)

// ContextKey is the type of the values this package reads from a context
type ContextKey string

// RequestIDKey carries the request id set by the request id middleware
const RequestIDKey ContextKey = "request_id"

// Log is the global logger instance. It falls back to slog's default until Setup runs.
var Log = slog.Default()

// Setup initializes the global logger based on the environment
func Setup(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	switch env {
	case "production":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "development":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// WithContext returns the global logger annotated with the request id found in ctx
func WithContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Log
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return Log.With("request_id", requestID)
	}
	return Log
}

// Info logs an info message
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}
