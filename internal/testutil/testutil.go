package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"testing"
)

// TempDir creates a temporary directory for testing
// It returns the directory path and a cleanup function
func TempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "osfind-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		// restore permissions removed by tests so RemoveAll can descend
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err == nil && info.IsDir() {
				os.Chmod(path, 0755)
			}
			return nil
		})
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// CreateTestFile creates a test file with the given content, creating parent
// directories as needed. name may contain slashes.
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	return path
}

// CreateTestFileWithSize creates a test file of exactly size bytes
func CreateTestFileWithSize(t *testing.T, dir, name string, size int64) string {
	t.Helper()
	return CreateTestFile(t, dir, name, bytes.Repeat([]byte{'x'}, int(size)))
}

// CreateTree creates one file per entry of files, keyed by slash-separated
// relative path, each with the given size.
func CreateTree(t *testing.T, dir string, files map[string]int64) {
	t.Helper()
	for name, size := range files {
		CreateTestFileWithSize(t, dir, name, size)
	}
}

// Mkdir creates a (possibly nested) empty directory and returns its path
func Mkdir(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	return path
}

// Symlink creates link pointing at target
func Symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
}

// Link creates a hard link
func Link(t *testing.T, existing, link string) {
	t.Helper()
	if err := os.Link(existing, link); err != nil {
		t.Fatalf("failed to create hard link: %v", err)
	}
}

// Inode returns the inode number of path
func Inode(t *testing.T, path string) uint64 {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		t.Skip("inode numbers not available on this platform")
	}
	return uint64(st.Ino)
}

// SkipIfRoot skips tests that rely on permission failures
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

// Relative strips prefix from every path and returns them sorted, for
// comparisons that must not depend on enumeration order.
func Relative(prefix string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, strings.TrimPrefix(p, prefix))
	}
	sort.Strings(out)
	return out
}
