package progress

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Ning0612/osfind/internal/domain"
)

func TestCallbackReporter_Counts(t *testing.T) {
	reporter := NewCallbackReporter(nil)

	reporter.EnterDir("/root/")
	reporter.Scanned(domain.EntryRegular)
	reporter.Scanned(domain.EntryRegular)
	reporter.Scanned(domain.EntryOther)
	reporter.Scanned(domain.EntryDirectory)
	reporter.EnterDir("/root/sub/")
	reporter.Matched("/root/a.txt")
	reporter.Error(errors.New("boom"))

	stats := reporter.Stats()
	if stats.Directories != 2 {
		t.Errorf("expected 2 directories, got %d", stats.Directories)
	}
	if stats.Files != 2 {
		t.Errorf("expected 2 files, got %d", stats.Files)
	}
	if stats.Others != 1 {
		t.Errorf("expected 1 other, got %d", stats.Others)
	}
	if stats.Matches != 1 {
		t.Errorf("expected 1 match, got %d", stats.Matches)
	}
	if stats.Errors != 1 {
		t.Errorf("expected 1 error, got %d", stats.Errors)
	}
	if stats.Subdirectories != 1 {
		t.Errorf("expected 1 subdirectory, got %d", stats.Subdirectories)
	}
	// the root is entered but not scanned
	if stats.Entries() != 4 {
		t.Errorf("expected 4 entries, got %d", stats.Entries())
	}
}

func TestCallbackReporter_RootIsNotAnEntry(t *testing.T) {
	reporter := NewCallbackReporter(nil)

	reporter.EnterDir("/empty/")

	stats := reporter.Stats()
	if stats.Directories != 1 {
		t.Errorf("expected 1 directory, got %d", stats.Directories)
	}
	if stats.Entries() != 0 {
		t.Errorf("expected 0 entries for an empty root, got %d", stats.Entries())
	}
}

func TestCallbackReporter_UnopenedSubdirectory(t *testing.T) {
	reporter := NewCallbackReporter(nil)

	reporter.EnterDir("/root/")
	reporter.Scanned(domain.EntryDirectory)
	reporter.Error(errors.New("permission denied"))

	stats := reporter.Stats()
	if stats.Directories != 1 || stats.Subdirectories != 1 || stats.Entries() != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestCallbackReporter_Callback(t *testing.T) {
	var updates []Update
	var mu sync.Mutex

	reporter := NewCallbackReporter(func(u Update) {
		mu.Lock()
		updates = append(updates, u)
		mu.Unlock()
	})

	reporter.EnterDir("/root/")
	reporter.Scanned(domain.EntryRegular)
	reporter.Matched("/root/a.txt")
	boom := errors.New("boom")
	reporter.Error(boom)

	mu.Lock()
	defer mu.Unlock()

	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(updates))
	}
	if updates[0].Type != UpdateEnterDir || updates[0].Path != "/root/" {
		t.Errorf("unexpected first update: %+v", updates[0])
	}
	if updates[1].Type != UpdateMatch || updates[1].Matches != 1 || updates[1].Entries != 1 {
		t.Errorf("unexpected match update: %+v", updates[1])
	}
	if updates[2].Type != UpdateError || !errors.Is(updates[2].Error, boom) {
		t.Errorf("unexpected error update: %+v", updates[2])
	}
}

func TestCallbackReporter_CallbackCanReenter(t *testing.T) {
	var reporter *CallbackReporter
	reporter = NewCallbackReporter(func(u Update) {
		// must not deadlock
		_ = reporter.Stats()
	})
	reporter.Matched("x")
}

func TestStats_String(t *testing.T) {
	s := Stats{Directories: 2, Files: 3, Others: 1, Matches: 2, Errors: 0}
	out := s.String()
	for _, want := range []string{"2 directories", "3 files", "1 other", "2 matched", "0 errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() = %q, missing %q", out, want)
		}
	}
}

func TestNullReporter(t *testing.T) {
	var r Reporter = NullReporter{}
	// should not panic
	r.EnterDir("/")
	r.Scanned(domain.EntryRegular)
	r.Matched("/a")
	r.Error(errors.New("x"))
}
