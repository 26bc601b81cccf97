package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/Ning0612/osfind/internal/domain"
)

// Reporter receives traversal events
type Reporter interface {
	// EnterDir is called when a directory starts being enumerated
	EnterDir(path string)
	// Scanned is called for every entry except "." and ".."
	Scanned(kind domain.EntryType)
	// Matched is called for every path added to the result set
	Matched(path string)
	// Error is called for every reported traversal error
	Error(err error)
}

// Callback is a function that receives progress updates
type Callback func(update Update)

// Update represents a progress update
type Update struct {
	Type        UpdateType
	Path        string
	Error       error
	Directories int
	Entries     int
	Matches     int
	Errors      int
}

// UpdateType indicates the type of progress update
type UpdateType int

const (
	UpdateEnterDir UpdateType = iota
	UpdateMatch
	UpdateError
)

// Stats is a snapshot of the traversal counters
type Stats struct {
	// Directories counts directories entered, the root included
	Directories int

	// Subdirectories, Files and Others count scanned records by type
	Subdirectories int
	Files          int
	Others         int

	Matches int
	Errors  int
	Elapsed time.Duration
}

// Entries returns the number of records scanned, excluding "." and "..".
// The root is entered but never scanned, so it is not counted.
func (s Stats) Entries() int {
	return s.Subdirectories + s.Files + s.Others
}

// String formats the stats for a summary line
func (s Stats) String() string {
	return fmt.Sprintf("%d directories, %d files, %d other, %d matched, %d errors in %s",
		s.Directories, s.Files, s.Others, s.Matches, s.Errors, s.Elapsed.Round(time.Millisecond))
}

// CallbackReporter implements Reporter with counters and an optional callback.
// Scanned entries are counted but do not trigger the callback.
type CallbackReporter struct {
	callback Callback
	mu       sync.Mutex
	stats    Stats
	started  time.Time
}

// NewCallbackReporter creates a new CallbackReporter; callback may be nil
func NewCallbackReporter(callback Callback) *CallbackReporter {
	return &CallbackReporter{
		callback: callback,
		started:  time.Now(),
	}
}

// EnterDir counts a visited directory
func (r *CallbackReporter) EnterDir(path string) {
	r.emit(UpdateEnterDir, path, nil)
}

// Scanned counts one entry by type. A subdirectory is counted here even if
// it later fails to open; Directories only counts the ones entered.
func (r *CallbackReporter) Scanned(kind domain.EntryType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case domain.EntryRegular:
		r.stats.Files++
	case domain.EntryDirectory:
		r.stats.Subdirectories++
	default:
		r.stats.Others++
	}
}

// Matched counts one match
func (r *CallbackReporter) Matched(path string) {
	r.emit(UpdateMatch, path, nil)
}

// Error counts one reported error
func (r *CallbackReporter) Error(err error) {
	r.emit(UpdateError, "", err)
}

// Stats returns the counters collected so far
func (r *CallbackReporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	s.Elapsed = time.Since(r.started)
	return s
}

func (r *CallbackReporter) emit(kind UpdateType, path string, err error) {
	r.mu.Lock()
	switch kind {
	case UpdateEnterDir:
		r.stats.Directories++
	case UpdateMatch:
		r.stats.Matches++
	case UpdateError:
		r.stats.Errors++
	}

	update := Update{
		Type:        kind,
		Path:        path,
		Error:       err,
		Directories: r.stats.Directories,
		Entries:     r.stats.Entries(),
		Matches:     r.stats.Matches,
		Errors:      r.stats.Errors,
	}
	callback := r.callback
	r.mu.Unlock()

	// Call callback outside lock to prevent deadlock
	if callback != nil {
		callback(update)
	}
}

// NullReporter is a no-op reporter
type NullReporter struct{}

func (NullReporter) EnterDir(path string)          {}
func (NullReporter) Scanned(kind domain.EntryType) {}
func (NullReporter) Matched(path string)           {}
func (NullReporter) Error(err error)               {}
