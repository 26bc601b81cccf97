package logger

import (
	"fmt"
	"io"
	"os"
)

// LegacyLogger writes plain "[LEVEL] msg args" lines, without sanitizing.
type LegacyLogger struct {
	level Level
	out   io.Writer
	attrs []any
}

// NewLegacyLogger 建立 legacy logger；out 為 nil 時寫到 stderr
func NewLegacyLogger(level Level, out io.Writer) *LegacyLogger {
	if out == nil {
		out = os.Stderr
	}
	return &LegacyLogger{level: level, out: out}
}

func (l *LegacyLogger) log(level Level, tag, msg string, args []any) {
	if level < l.level {
		return
	}
	all := append(append([]any{}, l.attrs...), args...)
	if len(all) == 0 {
		fmt.Fprintf(l.out, "[%s] %s\n", tag, msg)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s %v\n", tag, msg, all)
}

func (l *LegacyLogger) Debug(msg string, args ...any) { l.log(LevelDebug, "DEBUG", msg, args) }
func (l *LegacyLogger) Info(msg string, args ...any)  { l.log(LevelInfo, "INFO", msg, args) }
func (l *LegacyLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, "WARN", msg, args) }
func (l *LegacyLogger) Error(msg string, args ...any) { l.log(LevelError, "ERROR", msg, args) }

// With returns a logger that prefixes args to every line
func (l *LegacyLogger) With(args ...any) Logger {
	return &LegacyLogger{
		level: l.level,
		out:   l.out,
		attrs: append(append([]any{}, l.attrs...), args...),
	}
}

func (l *LegacyLogger) Sync() error     { return nil }
func (l *LegacyLogger) Shutdown() error { return nil }
