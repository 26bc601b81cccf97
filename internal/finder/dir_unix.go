//go:build unix && !linux

package finder

// Fallback backend for macOS and the BSDs: enumeration goes through
// (*os.File).ReadDir in fixed-size chunks and entry types come from
// DirEntry.Type(). The only per-entry stat is the inode lookup.

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"github.com/Ning0612/osfind/internal/domain"
)

// direntApproxSize turns the byte budget of a read into an entry count.
const direntApproxSize = 32

// Dir is an open directory handle.
// The caller that opened it must Close it.
type Dir struct {
	fd     int
	f      *os.File
	inodes bool
}

// OpenDir opens path read-only in directory mode.
func OpenDir(path string) (*Dir, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &Dir{fd: fd, f: os.NewFile(uintptr(fd), path)}, nil
	}
}

// OpenDirAt opens the subdirectory name relative to d.
func (d *Dir) OpenDirAt(name string) (*Dir, error) {
	fd, err := openat(d.fd, name, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC|unix.O_NOFOLLOW)
	if err != nil {
		return nil, err
	}
	return &Dir{fd: fd, f: os.NewFile(uintptr(fd), name), inodes: d.inodes}, nil
}

// Close releases the handle. Closing twice is a no-op.
func (d *Dir) Close() error {
	if d == nil || d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	d.fd = -1
	if err != nil {
		return fmt.Errorf("close dir: %w", err)
	}
	return nil
}

// ReadEntries reads up to one buffer's worth of entries and calls fn for each.
// ReadDir never yields "." or "..". It returns the number of entries read;
// 0 means the directory is exhausted.
func (d *Dir) ReadEntries(buf []byte, fn func(domain.Entry)) (int, error) {
	count := len(buf) / direntApproxSize
	if count < 1 {
		count = 1
	}

	entries, err := d.f.ReadDir(count)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}

	for _, e := range entries {
		entry := domain.Entry{Name: e.Name(), Type: classify(e)}
		if d.inodes && entry.Type == domain.EntryRegular {
			var st unix.Stat_t
			if err := fstatat(d.fd, entry.Name, &st); err == nil {
				entry.Inode = uint64(st.Ino)
			}
		}
		fn(entry)
	}

	return len(entries), nil
}

// classify maps the DirEntry type bits. ReadDir already lstats entries whose
// record type was unknown, so no extra call is made here.
func classify(e fs.DirEntry) domain.EntryType {
	return classifyMode(e.Type())
}

// wantInodes enables the per-entry inode lookup. Records read through
// ReadDir carry no inode, so it costs one fstatat per regular file.
func (d *Dir) wantInodes(on bool) {
	d.inodes = on
}
