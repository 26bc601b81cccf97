package domain

// EntryType classifies a raw directory record
type EntryType int

const (
	EntryOther EntryType = iota
	EntryRegular
	EntryDirectory
)

// String returns the string representation of the entry type
func (t EntryType) String() string {
	switch t {
	case EntryRegular:
		return "regular"
	case EntryDirectory:
		return "directory"
	default:
		return "other"
	}
}

// Entry is a transient view of one directory record.
// Name is a single path component taken verbatim from the record.
type Entry struct {
	// Inode is the record's inode number
	Inode uint64

	// Type is read from the record itself, without a metadata call
	Type EntryType

	// Name is relative to the directory being read
	Name string
}

// IsDir returns true if this is a directory
func (e Entry) IsDir() bool {
	return e.Type == EntryDirectory
}

// IsFile returns true if this is a regular file
func (e Entry) IsFile() bool {
	return e.Type == EntryRegular
}

// IsDotEntry reports whether the entry is the "." or ".." pseudo-entry
func (e Entry) IsDotEntry() bool {
	return e.Name == "." || e.Name == ".."
}

// FileMetadata holds the lazily fetched metadata of one entry
type FileMetadata struct {
	// Size in bytes
	Size int64

	// Links is the hard-link count
	Links uint64
}
