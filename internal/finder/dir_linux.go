//go:build linux

package finder

// Linux backend: directory records come straight from getdents64 and are
// parsed in place from the caller's buffer.

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/Ning0612/osfind/internal/domain"
)

// linux_dirent64 layout:
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    // offset 0
//	    off64_t        d_off;    // offset 8
//	    unsigned short d_reclen; // offset 16
//	    unsigned char  d_type;   // offset 18
//	    char           d_name[]; // offset 19, NUL terminated
//	};
const (
	direntInoOffset    = 0
	direntReclenOffset = 16
	direntTypeOffset   = 18
	direntNameOffset   = 19
)

var errInvalidDirent = errors.New("invalid dirent record")

// Dir is an open directory handle.
// The caller that opened it must Close it.
type Dir struct {
	fd int
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
		return &Dir{fd: fd}, nil
	}
}

// OpenDirAt opens the subdirectory name relative to d.
func (d *Dir) OpenDirAt(name string) (*Dir, error) {
	fd, err := openat(d.fd, name, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC|unix.O_NOFOLLOW)
	if err != nil {
		return nil, err
	}
	return &Dir{fd: fd}, nil
}

// Close releases the handle. Closing twice is a no-op.
func (d *Dir) Close() error {
	if d == nil || d.fd < 0 {
		return nil
	}
	// close(2) is not retried on EINTR
	err := unix.Close(d.fd)
	d.fd = -1
	if err != nil {
		return fmt.Errorf("close dir: %w", err)
	}
	return nil
}

// ReadEntries reads one chunk of directory records into buf and calls fn for
// each of them, "." and ".." included. It returns the number of bytes the
// kernel filled; 0 means the directory is exhausted.
//
// Entries must not be retained past fn beyond their copied fields.
func (d *Dir) ReadEntries(buf []byte, fn func(domain.Entry)) (int, error) {
	var (
		n   int
		err error
	)
	for {
		n, err = unix.Getdents(d.fd, buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		break
	}
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}

	data := buf[:n]
	for len(data) > 0 {
		if len(data) < direntNameOffset {
			return n, errInvalidDirent
		}

		reclen := int(binary.NativeEndian.Uint16(data[direntReclenOffset:]))
		if reclen < direntNameOffset || reclen > len(data) {
			return n, errInvalidDirent
		}

		record := data[:reclen]
		data = data[reclen:]

		name := record[direntNameOffset:]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		if len(name) == 0 {
			continue
		}

		fn(domain.Entry{
			Inode: binary.NativeEndian.Uint64(record[direntInoOffset:]),
			Type:  d.classify(record[direntTypeOffset], name),
			Name:  string(name),
		})
	}

	return n, nil
}

// classify maps d_type to an entry type. Filesystems that leave d_type as
// DT_UNKNOWN get one fstatat(AT_SYMLINK_NOFOLLOW) call.
func (d *Dir) classify(dtype byte, name []byte) domain.EntryType {
	switch dtype {
	case unix.DT_REG:
		return domain.EntryRegular
	case unix.DT_DIR:
		return domain.EntryDirectory
	case unix.DT_UNKNOWN:
		kind, err := classifyAt(d.fd, string(name))
		if err != nil {
			// racy or unreadable entry, treat as neither file nor directory
			return domain.EntryOther
		}
		return kind
	default:
		return domain.EntryOther
	}
}

// wantInodes is a no-op here: every dirent64 record carries its inode.
func (d *Dir) wantInodes(bool) {}
