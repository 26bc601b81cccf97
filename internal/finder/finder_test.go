package finder

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/Ning0612/osfind/internal/domain"
	"github.com/Ning0612/osfind/internal/progress"
	"github.com/Ning0612/osfind/internal/testutil"
)

// errorCollector records every error passed to the ErrorHandler
type errorCollector struct {
	errs []error
}

func (c *errorCollector) handle(err error) {
	c.errs = append(c.errs, err)
}

// countingFetcher counts metadata lookups
type countingFetcher struct {
	calls int
	inner MetadataFetcher
}

func (c *countingFetcher) Fetch(dir *Dir, name string) (domain.FileMetadata, error) {
	c.calls++
	return c.inner.Fetch(dir, name)
}

// sampleTree builds root/{a.txt(10), b.txt(20), sub/c.txt(30)}
func sampleTree(t *testing.T) string {
	t.Helper()
	dir, cleanup := testutil.TempDir(t)
	t.Cleanup(cleanup)

	testutil.CreateTree(t, dir, map[string]int64{
		"a.txt":     10,
		"b.txt":     20,
		"sub/c.txt": 30,
	})
	return dir
}

func find(t *testing.T, root string, filters domain.FilterSet, opts ...Option) ([]string, *errorCollector) {
	t.Helper()
	collector := &errorCollector{}
	opts = append([]Option{WithErrorHandler(collector.handle)}, opts...)

	results, err := Find(root, filters, opts...)
	if err != nil {
		t.Fatalf("Find(%s) error = %v", root, err)
	}
	return results.Paths(), collector
}

func TestFind_SizeGreaterScenario(t *testing.T) {
	root := sampleTree(t)

	paths, errs := find(t, root, domain.FilterSet{SizeMode: domain.SizeGreater, SizeTarget: 20})

	got := testutil.Relative(root+"/", paths)
	want := []string{"b.txt", "sub/c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}
	if len(errs.errs) != 0 {
		t.Errorf("unexpected errors: %v", errs.errs)
	}
}

func TestFind_NameScenario(t *testing.T) {
	root := sampleTree(t)

	paths, _ := find(t, root, domain.FilterSet{NameTarget: "c.txt"})

	want := []string{root + "/sub/c.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Find() = %v, want %v", paths, want)
	}
}

func TestFind_EmptyRoot(t *testing.T) {
	root := t.TempDir()

	paths, errs := find(t, root, domain.FilterSet{})

	if len(paths) != 0 {
		t.Errorf("expected no results, got %v", paths)
	}
	if len(errs.errs) != 0 {
		t.Errorf("expected no errors, got %v", errs.errs)
	}
}

func TestFind_NonexistentRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	collector := &errorCollector{}

	results, err := Find(root, domain.FilterSet{}, WithErrorHandler(collector.handle))

	if !errors.Is(err, domain.ErrOpen) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Find() error = %v, want ErrOpen wrapping ENOENT", err)
	}
	var pathErr *domain.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != root+"/" {
		t.Errorf("error path = %v, want %s/", err, root)
	}
	if results == nil || results.Len() != 0 {
		t.Errorf("expected empty result set, got %v", results.Paths())
	}
	if len(collector.errs) != 0 {
		t.Errorf("root failure must not reach the handler, got %v", collector.errs)
	}
}

func TestFind_RootIsAFile(t *testing.T) {
	root := sampleTree(t)

	_, err := Find(filepath.Join(root, "a.txt"), domain.FilterSet{})
	if !errors.Is(err, domain.ErrOpen) || !errors.Is(err, unix.ENOTDIR) {
		t.Errorf("Find() error = %v, want ErrOpen wrapping ENOTDIR", err)
	}
}

func TestFind_InvalidFilters(t *testing.T) {
	root := sampleTree(t)

	_, err := Find(root, domain.FilterSet{SizeMode: domain.SizeMode(42)})
	if !errors.Is(err, domain.ErrConfigInvalid) {
		t.Errorf("Find() error = %v, want ErrConfigInvalid", err)
	}
}

func TestFind_NoPredicatesMatchesAllRegularFiles(t *testing.T) {
	root := sampleTree(t)

	paths, _ := find(t, root, domain.FilterSet{})

	got := testutil.Relative(root+"/", paths)
	want := []string{"a.txt", "b.txt", "sub/c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFind_TrailingSeparatorInRoot(t *testing.T) {
	root := sampleTree(t)

	paths, _ := find(t, root+"/", domain.FilterSet{NameTarget: "c.txt"})

	want := []string{root + "/sub/c.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Find() = %v, want %v", paths, want)
	}
}

func TestFind_SkipsMetadataWithoutMetadataPredicates(t *testing.T) {
	root := sampleTree(t)

	tests := []struct {
		name      string
		filters   domain.FilterSet
		wantCalls int
	}{
		{name: "no predicates", filters: domain.FilterSet{}, wantCalls: 0},
		{name: "name only", filters: domain.FilterSet{NameTarget: "c.txt"}, wantCalls: 0},
		{name: "inode only", filters: domain.FilterSet{InodeTarget: 1}, wantCalls: 0},
		{name: "size", filters: domain.FilterSet{SizeMode: domain.SizeLess, SizeTarget: 100}, wantCalls: 3},
		{name: "nlinks", filters: domain.FilterSet{NLinksTarget: 1}, wantCalls: 3},
		{name: "name then size", filters: domain.FilterSet{NameTarget: "a.txt", SizeMode: domain.SizeEqual, SizeTarget: 10}, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &countingFetcher{inner: StatFetcher{}}
			find(t, root, tt.filters, WithFetcher(fetcher))

			if fetcher.calls != tt.wantCalls {
				t.Errorf("metadata fetches = %d, want %d", fetcher.calls, tt.wantCalls)
			}
		})
	}
}

// Known boundary case: LESS and GREATER include the target, so a file of
// exactly the target size matches all three modes.
func TestFind_SizeBoundaryIsInclusive(t *testing.T) {
	root := sampleTree(t)

	for _, mode := range []domain.SizeMode{domain.SizeLess, domain.SizeEqual, domain.SizeGreater} {
		t.Run(mode.String(), func(t *testing.T) {
			paths, _ := find(t, root, domain.FilterSet{NameTarget: "b.txt", SizeMode: mode, SizeTarget: 20})
			if len(paths) != 1 {
				t.Errorf("b.txt (20 bytes) should match %v 20, got %v", mode, paths)
			}
		})
	}
}

func TestFind_SizeLess(t *testing.T) {
	root := sampleTree(t)

	paths, _ := find(t, root, domain.FilterSet{SizeMode: domain.SizeLess, SizeTarget: 20})

	got := testutil.Relative(root+"/", paths)
	want := []string{"a.txt", "b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFind_Inode(t *testing.T) {
	root := sampleTree(t)
	ino := testutil.Inode(t, filepath.Join(root, "sub", "c.txt"))

	paths, _ := find(t, root, domain.FilterSet{InodeTarget: ino})

	want := []string{root + "/sub/c.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Find() = %v, want %v", paths, want)
	}
}

func TestFind_HardLinks(t *testing.T) {
	root := sampleTree(t)
	testutil.Link(t, filepath.Join(root, "a.txt"), filepath.Join(root, "sub", "a-link.txt"))

	paths, _ := find(t, root, domain.FilterSet{NLinksTarget: 2})

	got := testutil.Relative(root+"/", paths)
	want := []string{"a.txt", "sub/a-link.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}

	single, _ := find(t, root, domain.FilterSet{NLinksTarget: 1})
	got = testutil.Relative(root+"/", single)
	want = []string{"b.txt", "sub/c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find(nlinks=1) = %v, want %v", got, want)
	}
}

func TestFind_Conjunction(t *testing.T) {
	root := sampleTree(t)
	testutil.CreateTestFileWithSize(t, root, "other/c.txt", 5)

	paths, _ := find(t, root, domain.FilterSet{NameTarget: "c.txt", SizeMode: domain.SizeGreater, SizeTarget: 10})

	want := []string{root + "/sub/c.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Find() = %v, want %v", paths, want)
	}
}

func TestFind_NameIsExactAndCaseSensitive(t *testing.T) {
	root := sampleTree(t)
	testutil.CreateTestFileWithSize(t, root, "C.txt", 1)
	testutil.CreateTestFileWithSize(t, root, "c.txt.bak", 1)

	paths, _ := find(t, root, domain.FilterSet{NameTarget: "c.txt"})

	want := []string{root + "/sub/c.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Find() = %v, want %v", paths, want)
	}
}

func TestFind_IgnoresNonRegularEntries(t *testing.T) {
	root := sampleTree(t)
	testutil.Symlink(t, filepath.Join(root, "a.txt"), filepath.Join(root, "link-to-file"))
	testutil.Symlink(t, filepath.Join(root, "sub"), filepath.Join(root, "link-to-dir"))
	if err := unix.Mkfifo(filepath.Join(root, "pipe"), 0644); err != nil {
		t.Fatalf("mkfifo: %v", err)
	}
	testutil.Mkdir(t, root, "empty")

	paths, errs := find(t, root, domain.FilterSet{})

	got := testutil.Relative(root+"/", paths)
	want := []string{"a.txt", "b.txt", "sub/c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}
	if len(errs.errs) != 0 {
		t.Errorf("unexpected errors: %v", errs.errs)
	}

	// a name predicate cannot pull in a symlink or a directory either
	for _, name := range []string{"link-to-file", "link-to-dir", "pipe", "sub", "empty"} {
		if paths, _ := find(t, root, domain.FilterSet{NameTarget: name}); len(paths) != 0 {
			t.Errorf("name %q matched %v", name, paths)
		}
	}
}

func TestFind_Idempotent(t *testing.T) {
	root := sampleTree(t)
	for i := 0; i < 50; i++ {
		testutil.CreateTestFileWithSize(t, root, filepath.Join("many", strings.Repeat("n", 40)+string(rune('a'+i%26))+string(rune('a'+i/26))), int64(i))
	}

	first, _ := find(t, root, domain.FilterSet{SizeMode: domain.SizeGreater, SizeTarget: 5})
	second, _ := find(t, root, domain.FilterSet{SizeMode: domain.SizeGreater, SizeTarget: 5})

	if !slices.Equal(first, second) {
		t.Errorf("results differ between runs:\n%v\n%v", first, second)
	}
}

func TestFind_UnreadableSubdirectoryIsIsolated(t *testing.T) {
	testutil.SkipIfRoot(t)
	root := sampleTree(t)
	locked := testutil.Mkdir(t, root, "locked")
	testutil.CreateTestFileWithSize(t, locked, "hidden.txt", 1)
	testutil.CreateTestFileWithSize(t, root, "sibling/found.txt", 1)
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	paths, errs := find(t, root, domain.FilterSet{})

	got := testutil.Relative(root+"/", paths)
	want := []string{"a.txt", "b.txt", "sibling/found.txt", "sub/c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}

	if len(errs.errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs.errs)
	}
	var pathErr *domain.PathError
	if !errors.As(errs.errs[0], &pathErr) {
		t.Fatalf("error is %T, want *domain.PathError", errs.errs[0])
	}
	if !errors.Is(pathErr, domain.ErrOpen) || pathErr.Path != root+"/locked/" {
		t.Errorf("unexpected error: %v", pathErr)
	}
}

func TestFind_UnopenableFileIsExcluded(t *testing.T) {
	testutil.SkipIfRoot(t)
	root := sampleTree(t)
	secret := testutil.CreateTestFileWithSize(t, root, "secret.txt", 50)
	if err := os.Chmod(secret, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	// name-only filters never open the file
	paths, errs := find(t, root, domain.FilterSet{NameTarget: "secret.txt"})
	if len(paths) != 1 || len(errs.errs) != 0 {
		t.Errorf("name-only match = %v, errors %v", paths, errs.errs)
	}

	paths, errs = find(t, root, domain.FilterSet{SizeMode: domain.SizeGreater, SizeTarget: 20})

	got := testutil.Relative(root+"/", paths)
	want := []string{"b.txt", "sub/c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}
	if len(errs.errs) != 1 || !errors.Is(errs.errs[0], domain.ErrOpen) {
		t.Fatalf("expected one ErrOpen, got %v", errs.errs)
	}
	if !strings.Contains(errs.errs[0].Error(), root+"/secret.txt") {
		t.Errorf("error does not name the file: %v", errs.errs[0])
	}
}

func TestFind_DepthFirstOrder(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.CreateTree(t, dir, map[string]int64{
		"d1/x":      1,
		"d1/y":      1,
		"d1/deep/z": 1,
		"d2/x":      1,
		"d2/y":      1,
		"top":       1,
	})

	paths, _ := find(t, dir, domain.FilterSet{})
	if len(paths) != 6 {
		t.Fatalf("expected 6 results, got %v", paths)
	}

	// every subtree's results are contiguous
	for _, sub := range []string{"/d1/", "/d2/", "/d1/deep/"} {
		first, last := -1, -1
		for i, p := range paths {
			if strings.HasPrefix(p, dir+sub) {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		for i := first; i <= last; i++ {
			if !strings.HasPrefix(paths[i], dir+sub) {
				t.Errorf("subtree %s is not contiguous in %v", sub, paths)
			}
		}
	}
}

func TestFind_ManyEntriesSpanSeveralReads(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	const count = 300
	files := make(map[string]int64, count)
	for i := 0; i < count; i++ {
		name := strings.Repeat("f", 60) + "-" + string(rune('A'+i%26)) + string(rune('A'+(i/26)%26))
		files["big/"+name] = 1
	}
	testutil.CreateTree(t, dir, files)

	for _, size := range []int{0, DefaultBufferSize, 64 * 1024} {
		paths, errs := find(t, dir, domain.FilterSet{}, WithBufferSize(size))
		if len(paths) != len(files) {
			t.Errorf("buffer %d: found %d files, want %d", size, len(paths), len(files))
		}
		if len(errs.errs) != 0 {
			t.Errorf("buffer %d: unexpected errors %v", size, errs.errs)
		}
	}
}

func TestFind_ReporterCounts(t *testing.T) {
	root := sampleTree(t)
	reporter := progress.NewCallbackReporter(nil)

	find(t, root, domain.FilterSet{SizeMode: domain.SizeGreater, SizeTarget: 20}, WithReporter(reporter))

	stats := reporter.Stats()
	if stats.Directories != 2 || stats.Files != 3 || stats.Matches != 2 || stats.Errors != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	// a.txt, b.txt, sub and sub/c.txt
	if stats.Subdirectories != 1 || stats.Entries() != 4 {
		t.Errorf("Entries() = %d, Subdirectories = %d, want 4 and 1", stats.Entries(), stats.Subdirectories)
	}
}

func TestFind_ReporterEmptyRoot(t *testing.T) {
	reporter := progress.NewCallbackReporter(nil)

	find(t, t.TempDir(), domain.FilterSet{}, WithReporter(reporter))

	stats := reporter.Stats()
	if stats.Directories != 1 || stats.Entries() != 0 {
		t.Errorf("empty root: Directories = %d, Entries() = %d, want 1 and 0", stats.Directories, stats.Entries())
	}
}

func TestNormalizeRoot(t *testing.T) {
	tests := map[string]string{
		"/tmp/x":  "/tmp/x/",
		"/tmp/x/": "/tmp/x/",
		"/":       "/",
		"rel":     "rel/",
	}
	for in, want := range tests {
		if got := NormalizeRoot(in); got != want {
			t.Errorf("NormalizeRoot(%q) = %q, want %q", in, got, want)
		}
	}
}
