package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func setupWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w, err := OpenWorkspace(":memory:")
	if err != nil {
		t.Fatalf("failed to open workspace: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWorkspace_OpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "workspace.db")
	w, err := OpenWorkspace(path)
	if err != nil {
		t.Fatalf("failed to open on-disk workspace: %v", err)
	}
	defer w.Close()

	if err := w.Touch("/projects/a.dinsp", "a"); err != nil {
		t.Fatalf("failed to touch: %v", err)
	}

	// A second open sees the persisted entry.
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}
	w2, err := OpenWorkspace(path)
	if err != nil {
		t.Fatalf("failed to reopen workspace: %v", err)
	}
	defer w2.Close()

	recent, err := w2.Recent(0)
	if err != nil {
		t.Fatalf("failed to list recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Path != "/projects/a.dinsp" {
		t.Errorf("expected the touched project to persist, got %+v", recent)
	}
}

func TestWorkspace_TouchUpdatesExisting(t *testing.T) {
	w := setupWorkspace(t)

	if err := w.Touch("/projects/a.dinsp", "a"); err != nil {
		t.Fatalf("failed to touch: %v", err)
	}
	if err := w.Touch("/projects/a.dinsp", "a renamed"); err != nil {
		t.Fatalf("failed to re-touch: %v", err)
	}

	recent, err := w.Recent(0)
	if err != nil {
		t.Fatalf("failed to list recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(recent))
	}
	if recent[0].Name != "a renamed" {
		t.Errorf("expected updated name, got %q", recent[0].Name)
	}
	if recent[0].OpenedAt.After(time.Now().Add(time.Minute)) {
		t.Errorf("implausible opened_at %v", recent[0].OpenedAt)
	}
}

func TestWorkspace_RecentOrderAndLimit(t *testing.T) {
	w := setupWorkspace(t)

	for i := 0; i < 5; i++ {
		path := fmt.Sprintf("/projects/p%d.dinsp", i)
		if err := w.Touch(path, fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("failed to touch %s: %v", path, err)
		}
	}

	recent, err := w.Recent(3)
	if err != nil {
		t.Fatalf("failed to list recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].OpenedAt.After(recent[i-1].OpenedAt) {
			t.Errorf("recent list is not newest-first at index %d", i)
		}
	}
}

func TestWorkspace_Forget(t *testing.T) {
	w := setupWorkspace(t)

	if err := w.Touch("/projects/a.dinsp", "a"); err != nil {
		t.Fatalf("failed to touch: %v", err)
	}
	if err := w.Forget("/projects/a.dinsp"); err != nil {
		t.Fatalf("failed to forget: %v", err)
	}

	recent, err := w.Recent(0)
	if err != nil {
		t.Fatalf("failed to list recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected empty list after forget, got %d entries", len(recent))
	}

	// Forgetting an unknown path is a no-op.
	if err := w.Forget("/projects/unknown.dinsp"); err != nil {
		t.Errorf("unexpected error forgetting unknown path: %v", err)
	}
}
