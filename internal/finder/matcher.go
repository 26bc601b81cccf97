package finder

import (
	"errors"

	"github.com/Ning0612/osfind/internal/domain"
)

// Matcher evaluates a FilterSet against directory entries.
type Matcher struct {
	filters domain.FilterSet
	fetcher MetadataFetcher
	onError ErrorHandler
}

// NewMatcher creates a matcher. A nil fetcher uses StatFetcher and a nil
// onError logs through the package logger.
func NewMatcher(filters domain.FilterSet, fetcher MetadataFetcher, onError ErrorHandler) *Matcher {
	if fetcher == nil {
		fetcher = StatFetcher{}
	}
	if onError == nil {
		onError = LogError
	}
	return &Matcher{
		filters: filters,
		fetcher: fetcher,
		onError: onError,
	}
}

// Filters returns the filter set the matcher was built with.
func (m *Matcher) Filters() domain.FilterSet {
	return m.filters
}

// Matches reports whether entry, found in dir under prefix, passes every
// active predicate. Predicates are checked in order and the first failure
// ends the check. Metadata is fetched only for size and link-count
// predicates; a fetch failure is reported and the entry does not match.
func (m *Matcher) Matches(entry domain.Entry, dir *Dir, prefix string) bool {
	f := m.filters

	if f.InodeTarget != 0 && entry.Inode != f.InodeTarget {
		return false
	}

	if f.NameTarget != "" && entry.Name != f.NameTarget {
		return false
	}

	if !f.NeedsMetadata() {
		return true
	}

	meta, err := m.fetcher.Fetch(dir, entry.Name)
	if err != nil {
		m.onError(withFullPath(err, prefix+entry.Name))
		return false
	}

	if f.SizeMode != domain.SizeNone && !f.SizeMode.Compare(meta.Size, f.SizeTarget) {
		return false
	}

	if f.NLinksTarget != 0 && meta.Links != f.NLinksTarget {
		return false
	}

	return true
}

// withFullPath rewrites a fetcher error so it names the file by its result path.
func withFullPath(err error, path string) error {
	var pathErr *domain.PathError
	if errors.As(err, &pathErr) {
		return domain.NewPathError(pathErr.Kind, path, pathErr.Err)
	}
	return domain.NewPathError(domain.ErrMetadata, path, err)
}
