// Package logger provides structured logging for fontsession.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the application logger interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Config holds logger configuration.
type Config struct {
	// Level is debug, info, warn or error.
	Level string
	// Format is json or text.
	Format string
	// Output defaults to os.Stderr.
	Output    io.Writer
	AddSource bool
}

// DefaultConfig is text on stderr at warn level, which suits an
// interactive CLI.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "text", Output: os.Stderr}
}

// level is shared by every logger built by New so SetLevel reaches them all.
var level = new(slog.LevelVar)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func parseLevel(name string) slog.Level {
	if l, ok := levelNames[strings.ToLower(name)]; ok {
		return l
	}
	return slog.LevelInfo
}

// SetLevel changes the level of every logger built by New.
func SetLevel(name string) { level.Set(parseLevel(name)) }

// GetLevel reports the current level name.
func GetLevel() string {
	return strings.ToLower(level.Level().String())
}

// New builds a logger. Records carry the operation and session name found
// on the context passed to WithContext.
func New(cfg Config) (Logger, error) {
	SetLevel(cfg.Level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		},
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return newLogger(contextHandler{h}), nil
}

// contextHandler adds the operation and session name from the record's
// context.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if op := OperationFromContext(ctx); op != "" {
		r.AddAttrs(slog.String("op", op))
	}
	if name := SessionFromContext(ctx); name != "" {
		r.AddAttrs(slog.String("session", name))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

type ctxLogger struct {
	sl  *slog.Logger
	ctx context.Context
}

func newLogger(h slog.Handler) *ctxLogger {
	return &ctxLogger{sl: slog.New(h), ctx: context.Background()}
}

func (l *ctxLogger) log(lvl slog.Level, msg string, args []any) {
	l.sl.Log(l.ctx, lvl, msg, args...)
}

func (l *ctxLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *ctxLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *ctxLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *ctxLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *ctxLogger) With(args ...any) Logger {
	return &ctxLogger{sl: l.sl.With(args...), ctx: l.ctx}
}

func (l *ctxLogger) WithContext(ctx context.Context) Logger {
	return &ctxLogger{sl: l.sl, ctx: ctx}
}

// Slog returns a *slog.Logger sharing l's handler, so storage code logging
// with the *Context methods gets the same op and session attributes.
// Loggers not created by this package fall back to slog.Default().
func Slog(l Logger) *slog.Logger {
	if cl, ok := l.(*ctxLogger); ok {
		return cl.sl
	}
	return slog.Default()
}

var defaultLogger atomic.Pointer[ctxLogger]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(l.(*ctxLogger))
}

// SetDefault replaces the package default and the slog default.
func SetDefault(l Logger) {
	if cl, ok := l.(*ctxLogger); ok {
		defaultLogger.Store(cl)
		slog.SetDefault(cl.sl)
	}
}

// Default returns the package default logger.
func Default() Logger {
	return defaultLogger.Load()
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return newLogger(slog.NewTextHandler(io.Discard, nil))
}
