package finder

import (
	"strings"

	"github.com/Ning0612/osfind/internal/domain"
)

// NormalizeRoot appends the separator to root unless it already ends with one.
func NormalizeRoot(root string) string {
	if strings.HasSuffix(root, Separator) {
		return root
	}
	return root + Separator
}

// Find walks the tree under root and returns the matching regular files,
// each path being the normalized root followed by its relative components.
//
// If root cannot be opened, Find returns an empty result set and a
// *domain.PathError of kind ErrOpen; that error is not passed to the
// ErrorHandler. Errors below the root only go to the ErrorHandler.
func Find(root string, filters domain.FilterSet, options ...Option) (*ResultSet, error) {
	results := NewResultSet()
	if err := filters.Validate(); err != nil {
		return results, err
	}

	prefix := NormalizeRoot(root)
	dir, err := OpenDir(root)
	if err != nil {
		return results, domain.NewPathError(domain.ErrOpen, prefix, err)
	}
	defer dir.Close()

	NewWalker(filters, options...).Visit(dir, prefix, results)
	return results, nil
}
