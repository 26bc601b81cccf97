package finder

import (
	"iter"
	"slices"
)

// ResultSet is the ordered, append-only list of matched paths.
// It is not safe for concurrent use.
type ResultSet struct {
	paths []string
}

// NewResultSet returns an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Append adds a path at the end.
func (r *ResultSet) Append(path string) {
	r.paths = append(r.paths, path)
}

// Len returns the number of matched paths.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.paths)
}

// Paths returns a copy of the matched paths in discovery order.
func (r *ResultSet) Paths() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.paths)
}

// All iterates over the matched paths in discovery order.
func (r *ResultSet) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r == nil {
			return
		}
		for _, p := range r.paths {
			if !yield(p) {
				return
			}
		}
	}
}
