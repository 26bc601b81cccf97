package finder

import (
	"github.com/Ning0612/osfind/internal/domain"
	"github.com/Ning0612/osfind/internal/logger"
	"github.com/Ning0612/osfind/internal/progress"
)

// Separator joins path components in result paths.
const Separator = "/"

// Walker is the depth-first traversal engine.
type Walker struct {
	matcher    *Matcher
	bufferSize int
	onError    ErrorHandler
	reporter   progress.Reporter
}

// NewWalker creates a walker for filters.
func NewWalker(filters domain.FilterSet, options ...Option) *Walker {
	opts := defaultWalkOptions()
	for _, opt := range options {
		opt(opts)
	}

	w := &Walker{
		bufferSize: opts.bufferSize,
		onError:    opts.onError,
		reporter:   opts.reporter,
	}
	w.matcher = NewMatcher(filters, opts.fetcher, w.report)
	return w
}

// Visit enumerates dir, whose result-path prefix is prefix, and everything
// beneath it. Matching regular files are appended to results. Subdirectories
// are opened relative to dir and closed before Visit moves to the next entry.
// A read error abandons dir; Visit never returns an error.
func (w *Walker) Visit(dir *Dir, prefix string, results *ResultSet) {
	dir.wantInodes(w.matcher.Filters().InodeTarget != 0)
	w.reporter.EnterDir(prefix)

	buf := make([]byte, w.bufferSize)
	for {
		n, err := dir.ReadEntries(buf, func(entry domain.Entry) {
			w.visitEntry(dir, prefix, entry, results)
		})
		if err != nil {
			w.report(domain.NewPathError(domain.ErrRead, prefix, err))
			return
		}
		if n == 0 {
			return
		}
	}
}

func (w *Walker) visitEntry(dir *Dir, prefix string, entry domain.Entry, results *ResultSet) {
	if entry.IsDotEntry() {
		return
	}
	w.reporter.Scanned(entry.Type)

	switch {
	case entry.IsFile():
		if w.matcher.Matches(entry, dir, prefix) {
			path := prefix + entry.Name
			results.Append(path)
			w.reporter.Matched(path)
		}

	case entry.IsDir():
		subPrefix := prefix + entry.Name + Separator
		sub, err := dir.OpenDirAt(entry.Name)
		if err != nil {
			w.report(domain.NewPathError(domain.ErrOpen, subPrefix, err))
			return
		}
		w.Visit(sub, subPrefix, results)
		if err := sub.Close(); err != nil {
			logger.Get().Warn("failed to release directory", "path", subPrefix, "error", err)
		}

	default:
		// symlinks, devices, sockets, fifos
	}
}

func (w *Walker) report(err error) {
	w.reporter.Error(err)
	w.onError(err)
}
