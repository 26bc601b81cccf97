package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Ning0612/osfind/internal/domain"
	"github.com/Ning0612/osfind/internal/logger"
)

// Config is the tool configuration. Search predicates are never read from
// here; they only come from the command line.
type Config struct {
	Log LogConfig `mapstructure:"log"`
}

// LogConfig controls diagnostic output
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is text or json
	Format string `mapstructure:"format"`

	// File enables a rotated log file in addition to stderr
	File LogFileConfig `mapstructure:"file"`
}

// LogFileConfig configures the rotated log file
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks if the configuration is complete and consistent
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", domain.ErrConfigInvalid, err)
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %v", domain.ErrConfigInvalid, err)
	}
	f := c.Log.File
	if f.MaxSizeMB < 0 || f.MaxAgeDays < 0 || f.MaxBackups < 0 {
		return fmt.Errorf("%w: log.file limits cannot be negative", domain.ErrConfigInvalid)
	}
	return nil
}

// LoggerConfig converts the log section into a logger.Config writing to
// stderr (os.Stderr when nil), plus the rotated file when log.file.path is set.
func (c *Config) LoggerConfig(stderr io.Writer) (logger.Config, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Config{}, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}
	format, err := logger.ParseFormat(c.Log.Format)
	if err != nil {
		return logger.Config{}, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	cfg := logger.Config{
		Level:  level,
		Format: format,
		Writer: stderr,
	}

	if c.Log.File.Path != "" {
		cfg.File = logger.FileConfig{
			Path:       ExpandPath(c.Log.File.Path),
			MaxSizeMB:  c.Log.File.MaxSizeMB,
			MaxAgeDays: c.Log.File.MaxAgeDays,
			MaxBackups: c.Log.File.MaxBackups,
			Compress:   c.Log.File.Compress,
		}
	}

	return cfg, nil
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}
