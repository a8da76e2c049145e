// Package logging writes JSON logs through log/slog. The current match ID
// rides along in the context and is emitted as correlation_id.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// LevelEnv names the environment variable holding the minimum log level.
const LevelEnv = "ASTEROIDS_LOG_LEVEL"

// Logger is a slog.Logger whose level helpers take a context first.
type Logger struct {
	*slog.Logger
}

// NewLogger logs to stdout at the level named by ASTEROIDS_LOG_LEVEL
// (DEBUG, INFO, WARN, ERROR). Unset or unknown values mean INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter is NewLogger writing to w. The terminal frontend owns
// stdout, so it logs to a file or io.Discard.
func NewLoggerWithWriter(w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: levelFromEnv(), ReplaceAttr: redact}
	return &Logger{slog.New(slog.NewJSONHandler(w, opts))}
}

// NewNopLogger drops every record.
func NewNopLogger() *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelError + 1}
	return &Logger{slog.New(slog.NewJSONHandler(io.Discard, opts))}
}

func (l *Logger) emit(ctx context.Context, level slog.Level, msg string, args []any) {
	if !l.Enabled(ctx, level) {
		return
	}
	if id := GetCorrelationID(ctx); id != "" {
		args = append(args, slog.String("correlation_id", id))
	}
	l.Log(ctx, level, msg, args...)
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelDebug, msg, args)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelInfo, msg, args)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelWarn, msg, args)
}

// Error records err under the "error" key. A nil err is left out.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.emit(ctx, slog.LevelError, msg, args)
}

type ctxKey struct{}

// WithCorrelationID stores id in ctx. An empty id gets a new UUID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = GenerateCorrelationID()
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// GetCorrelationID returns the ID stored by WithCorrelationID, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// GenerateCorrelationID returns a new UUID string. Match IDs use it too.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

var levels = map[string]slog.Level{
	"DEBUG":   slog.LevelDebug,
	"INFO":    slog.LevelInfo,
	"WARN":    slog.LevelWarn,
	"WARNING": slog.LevelWarn,
	"ERROR":   slog.LevelError,
}

func levelFromEnv() slog.Level {
	if lvl, ok := levels[strings.ToUpper(strings.TrimSpace(os.Getenv(LevelEnv)))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

var secretKeys = []string{"password", "passwd", "token", "secret", "authorization", "api_key"}

// redact hides values stored under credential-like keys.
func redact(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return slog.String(a.Key, "[REDACTED]")
		}
	}
	return a
}

// WrapError prefixes err with a formatted description and keeps it
// available to errors.Is and errors.As. It returns nil for a nil err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return fmt.Errorf("%s: %w", format, err)
}
