//go:build unix

package finder

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/Ning0612/osfind/internal/domain"
)

// openat opens name relative to dirfd, retrying on EINTR.
func openat(dirfd int, name string, flags int) (int, error) {
	for {
		fd, err := unix.Openat(dirfd, name, flags, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return -1, err
		}
		return fd, nil
	}
}

func fstat(fd int, st *unix.Stat_t) error {
	for {
		err := unix.Fstat(fd, st)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

func fstatat(dirfd int, name string, st *unix.Stat_t) error {
	for {
		err := unix.Fstatat(dirfd, name, st, unix.AT_SYMLINK_NOFOLLOW)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// classifyAt classifies name without following symlinks.
func classifyAt(dirfd int, name string) (domain.EntryType, error) {
	var st unix.Stat_t
	if err := fstatat(dirfd, name, &st); err != nil {
		return domain.EntryOther, err
	}

	switch st.Mode & unix.S_IFMT {
	case unix.S_IFREG:
		return domain.EntryRegular, nil
	case unix.S_IFDIR:
		return domain.EntryDirectory, nil
	default:
		return domain.EntryOther, nil
	}
}

// classifyMode maps fs.FileMode type bits to an entry type.
func classifyMode(mode fs.FileMode) domain.EntryType {
	switch {
	case mode.IsRegular():
		return domain.EntryRegular
	case mode.IsDir():
		return domain.EntryDirectory
	default:
		return domain.EntryOther
	}
}
