package domain

import (
	"errors"
	"fmt"
)

// Configuration errors - 設定錯誤，在走訪開始前回報
var (
	// ErrConfigInvalid indicates a malformed option or config value
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrDuplicateOption indicates a predicate or option was given more than once
	ErrDuplicateOption = errors.New("option specified more than once")

	// ErrConfigNotFound indicates an explicitly requested config file does not exist
	ErrConfigNotFound = errors.New("config file not found")
)

// Traversal errors - 走訪錯誤，僅影響單一項目或子目錄
var (
	// ErrOpen indicates a directory or file entry could not be opened
	ErrOpen = errors.New("open failed")

	// ErrRead indicates the directory enumeration call failed
	ErrRead = errors.New("read directory failed")

	// ErrMetadata indicates size/link-count retrieval failed
	ErrMetadata = errors.New("read metadata failed")
)

// ErrExec indicates the hand-off to the external program failed
var ErrExec = errors.New("exec failed")

// PathError records a traversal or exec failure together with the path involved.
type PathError struct {
	// Kind is one of ErrOpen, ErrRead, ErrMetadata or ErrExec
	Kind error

	// Path is the failing path as it would appear in the result set
	Path string

	// Err is the underlying OS error
	Err error
}

// NewPathError builds a PathError.
func NewPathError(kind error, path string, err error) *PathError {
	return &PathError{Kind: kind, Path: path, Err: err}
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap lets errors.Is match both the kind and the OS error.
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
