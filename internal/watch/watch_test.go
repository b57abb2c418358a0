package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LanS10t/geminiMiner/internal/mineral"
)

const goldHaul = `
[[item]]
type = "gold"
value = 1500
`

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DetectsRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	w := startWatcher(t, path)

	if err := os.WriteFile(path, []byte(goldHaul), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-w.Updates:
		if u.Err != nil {
			t.Fatalf("unexpected error: %v", u.Err)
		}
		if len(u.Inventory) != 1 || u.Inventory[0].Type != mineral.Gold {
			t.Errorf("Inventory = %+v", u.Inventory)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.toml")
	w := startWatcher(t, path)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(goldHaul), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-w.Updates:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	select {
	case u := <-w.Updates:
		t.Errorf("burst produced a second update: %+v", u)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.toml")
	w := startWatcher(t, path)

	if err := os.WriteFile(path, []byte("[[item]]\ntype = \"unobtainium\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-w.Updates:
		if u.Err == nil {
			t.Error("expected parse error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, filepath.Join(dir, "inventory.toml"))

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-w.Updates:
		t.Errorf("unexpected update: %+v", u)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StartFailureClosesWatcher(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "inventory.toml")
	w, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err == nil {
		t.Fatal("expected Start to fail for a missing directory")
	}

	if err := w.watcher.Add(t.TempDir()); !errors.Is(err, fsnotify.ErrClosed) {
		t.Errorf("inner watcher still open after failed Start: Add error = %v", err)
	}
}
