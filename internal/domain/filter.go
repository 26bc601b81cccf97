package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeMode selects how a file size is compared with the size target
type SizeMode int

const (
	SizeNone SizeMode = iota
	SizeLess
	SizeEqual
	SizeGreater
)

// String returns the string representation of the mode
func (m SizeMode) String() string {
	switch m {
	case SizeNone:
		return "none"
	case SizeLess:
		return "less"
	case SizeEqual:
		return "equal"
	case SizeGreater:
		return "greater"
	default:
		return "unknown"
	}
}

// IsValid checks if the size mode is a known value
func (m SizeMode) IsValid() bool {
	switch m {
	case SizeNone, SizeLess, SizeEqual, SizeGreater:
		return true
	}
	return false
}

// Compare reports whether size satisfies the mode against target.
// LESS and GREATER include the target itself.
func (m SizeMode) Compare(size, target int64) bool {
	switch m {
	case SizeLess:
		return size <= target
	case SizeEqual:
		return size == target
	case SizeGreater:
		return size >= target
	default:
		return true
	}
}

// ParseSize parses a size argument of the form [-|=|+]N.
// A bare number compares for equality.
func ParseSize(arg string) (SizeMode, int64, error) {
	mode := SizeEqual
	digits := arg
	if arg != "" {
		switch arg[0] {
		case '-':
			mode, digits = SizeLess, arg[1:]
		case '=':
			mode, digits = SizeEqual, arg[1:]
		case '+':
			mode, digits = SizeGreater, arg[1:]
		}
	}

	// strconv would accept a second sign, which is never meant here
	if digits == "" || strings.ContainsAny(digits[:1], "+-") {
		return SizeNone, 0, fmt.Errorf("%w: bad size argument %q", ErrConfigInvalid, arg)
	}

	target, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return SizeNone, 0, fmt.Errorf("%w: bad size argument %q", ErrConfigInvalid, arg)
	}
	return mode, target, nil
}

// FilterSet is the active predicate configuration.
// Zero values mean inactive; the set must not change once traversal begins.
type FilterSet struct {
	// InodeTarget matches the record inode; 0 is inactive
	InodeTarget uint64

	// NameTarget matches the full entry name exactly; "" is inactive
	NameTarget string

	// SizeMode and SizeTarget form the size predicate
	SizeMode   SizeMode
	SizeTarget int64

	// NLinksTarget matches the hard-link count; 0 is inactive
	NLinksTarget uint64
}

// NeedsMetadata reports whether matching requires a metadata fetch
func (f FilterSet) NeedsMetadata() bool {
	return f.SizeMode != SizeNone || f.NLinksTarget != 0
}

// Validate checks that the filter set is consistent
func (f FilterSet) Validate() error {
	if !f.SizeMode.IsValid() {
		return fmt.Errorf("%w: unknown size mode %d", ErrConfigInvalid, f.SizeMode)
	}
	if f.SizeMode == SizeNone && f.SizeTarget != 0 {
		return fmt.Errorf("%w: size target set without a size mode", ErrConfigInvalid)
	}
	if f.SizeMode != SizeNone && f.SizeTarget < 0 {
		return fmt.Errorf("%w: negative size target %d", ErrConfigInvalid, f.SizeTarget)
	}
	if strings.ContainsRune(f.NameTarget, '/') {
		return fmt.Errorf("%w: name %q contains a path separator", ErrConfigInvalid, f.NameTarget)
	}
	return nil
}
