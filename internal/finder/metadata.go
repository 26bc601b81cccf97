//go:build unix

package finder

import (
	"golang.org/x/sys/unix"

	"github.com/Ning0612/osfind/internal/domain"
)

// MetadataFetcher retrieves size and hard-link count for one entry of dir.
//
// Errors are returned as *domain.PathError with Kind ErrOpen or ErrMetadata;
// the path is the bare entry name and callers replace it with the full path.
type MetadataFetcher interface {
	Fetch(dir *Dir, name string) (domain.FileMetadata, error)
}

// StatFetcher opens the entry read-only relative to its directory and calls
// fstat on the resulting descriptor.
type StatFetcher struct{}

// Fetch implements MetadataFetcher.
func (StatFetcher) Fetch(dir *Dir, name string) (domain.FileMetadata, error) {
	// O_NONBLOCK keeps a FIFO swapped in after the readdir from blocking the open
	fd, err := openat(dir.fd, name, unix.O_RDONLY|unix.O_CLOEXEC|unix.O_NOFOLLOW|unix.O_NONBLOCK)
	if err != nil {
		return domain.FileMetadata{}, domain.NewPathError(domain.ErrOpen, name, err)
	}
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := fstat(fd, &st); err != nil {
		return domain.FileMetadata{}, domain.NewPathError(domain.ErrMetadata, name, err)
	}

	return domain.FileMetadata{
		Size:  st.Size,
		Links: uint64(st.Nlink),
	}, nil
}
