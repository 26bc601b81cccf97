package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogLogger slog 實作
//
// Only the logger returned by NewSlogLogger owns the log file; loggers
// derived through With share it and never close it.
type SlogLogger struct {
	logger    *slog.Logger
	sanitizer *Sanitizer
	file      io.Closer
}

// NewSlogLogger 建立新的 slog logger
func NewSlogLogger(config Config) (*SlogLogger, error) {
	var out io.Writer = os.Stderr
	if config.Writer != nil {
		out = config.Writer
	}

	var file io.WriteCloser
	if config.File.Path != "" {
		fw, err := newRotatingFile(config.File)
		if err != nil {
			return nil, err
		}
		file = fw
		out = io.MultiWriter(out, fw)
	}

	opts := &slog.HandlerOptions{Level: slog.Level(config.Level)}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &SlogLogger{
		logger:    slog.New(handler),
		sanitizer: NewSanitizer(),
		file:      file,
	}, nil
}

// newRotatingFile 建立檔案 writer（使用 lumberjack 支援 rotation）
func newRotatingFile(config FileConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    config.MaxSizeMB,
		MaxAge:     config.MaxAgeDays,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}, nil
}

func (l *SlogLogger) log(level Level, msg string, args []any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, slog.Level(level)) {
		return
	}
	l.logger.Log(ctx, slog.Level(level), l.sanitizer.Sanitize(msg), l.sanitizer.SanitizeArgs(args)...)
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *SlogLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }

// With 建立帶 context 的子 logger（不擁有 log 檔）
func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{
		logger:    l.logger.With(l.sanitizer.SanitizeArgs(args)...),
		sanitizer: l.sanitizer,
	}
}

// Sync is a no-op: slog writes through and lumberjack does not buffer.
func (l *SlogLogger) Sync() error {
	return nil
}

// Shutdown closes the log file. Later calls are no-ops.
func (l *SlogLogger) Shutdown() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
