package state_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cronwatch/internal/state"
)

func newStore(t *testing.T, path string) *state.Store {
	t.Helper()
	store, err := state.NewStore(path, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestReadMissingFileReturnsZero(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "last-notified"))
	if got := store.Read(); got != 0 {
		t.Fatalf("expected 0 for missing state file, got %d", got)
	}
}

func TestReadMalformedFileReturnsZero(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not-a-number\n"},
		{"empty", ""},
		{"negative", "-17\n"},
		{"trailing junk", "1700000000 oops\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "last-notified")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			store := newStore(t, path)
			if got := store.Read(); got != 0 {
				t.Fatalf("expected corrupt state to read as 0, got %d", got)
			}
		})
	}
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-notified")
	store := newStore(t, path)

	if err := store.Write(1700000000); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := store.Read(); got != 1700000000 {
		t.Fatalf("expected 1700000000, got %d", got)
	}

	if err := store.Write(1700014400); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got := store.Read(); got != 1700014400 {
		t.Fatalf("expected overwritten value 1700014400, got %d", got)
	}
}

func TestWriteCreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "last-notified")
	store := newStore(t, path)

	if err := store.Write(42); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := store.Read(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestWriteRejectsNegativeValue(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "last-notified"))
	if err := store.Write(-1); err == nil {
		t.Fatal("expected error for negative value")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, filepath.Join(dir, "last-notified"))
	if err := store.Write(99); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestNewStoreRequiresPath(t *testing.T) {
	if _, err := state.NewStore("  ", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLockExcludesSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-notified")

	first, err := state.NewLock(path)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	if err := first.Acquire(); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer first.Release()

	second, err := state.NewLock(path)
	if err != nil {
		t.Fatalf("second lock: %v", err)
	}
	if err := second.Acquire(); err == nil {
		second.Release()
		t.Fatal("expected second acquire to fail while lock is held")
	}

	first.Release()
	if err := second.Acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	second.Release()
}
