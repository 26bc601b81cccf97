package finder

import (
	"errors"

	"github.com/Ning0612/osfind/internal/domain"
	"github.com/Ning0612/osfind/internal/logger"
	"github.com/Ning0612/osfind/internal/progress"
)

const (
	// DefaultBufferSize is the byte size of each directory read.
	DefaultBufferSize = 1024

	// minBufferSize fits one record with a NAME_MAX-long name; getdents64
	// rejects smaller buffers with EINVAL.
	minBufferSize = 288
)

// ErrorHandler receives every per-entry error the traversal reports.
type ErrorHandler func(err error)

// Option configures a Walker.
type Option func(*walkOptions)

type walkOptions struct {
	bufferSize int
	fetcher    MetadataFetcher
	onError    ErrorHandler
	reporter   progress.Reporter
}

func defaultWalkOptions() *walkOptions {
	return &walkOptions{
		bufferSize: DefaultBufferSize,
		fetcher:    StatFetcher{},
		onError:    LogError,
		reporter:   progress.NullReporter{},
	}
}

// WithBufferSize sets the directory read chunk size. Values below the size
// of one maximal record are raised to it.
func WithBufferSize(size int) Option {
	return func(opts *walkOptions) {
		if size < minBufferSize {
			size = minBufferSize
		}
		opts.bufferSize = size
	}
}

// WithFetcher replaces the metadata accessor.
func WithFetcher(fetcher MetadataFetcher) Option {
	return func(opts *walkOptions) {
		if fetcher != nil {
			opts.fetcher = fetcher
		}
	}
}

// WithErrorHandler sets where per-entry errors go.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(opts *walkOptions) {
		if handler != nil {
			opts.onError = handler
		}
	}
}

// WithReporter sets the progress reporter.
func WithReporter(reporter progress.Reporter) Option {
	return func(opts *walkOptions) {
		if reporter != nil {
			opts.reporter = reporter
		}
	}
}

// LogError is the default ErrorHandler. It logs the failing path and the OS
// error at error level.
func LogError(err error) {
	var pathErr *domain.PathError
	if errors.As(err, &pathErr) {
		logger.Get().Error(pathErr.Kind.Error(), "path", pathErr.Path, "error", pathErr.Err)
		return
	}
	logger.Get().Error("traversal error", "error", err)
}
