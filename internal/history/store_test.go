package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cronwatch/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entries := []history.Entry{
		{RunID: "run-1", Site: "https://example.org", LastRun: 100, Age: 50, Threshold: 14400, Outcome: "fresh"},
		{RunID: "run-2", Site: "https://example.org", LastRun: 100, Age: 20000, Threshold: 14400, Outcome: "dispatched"},
		{RunID: "run-3", Site: "https://example.org", LastRun: 100, Age: 20500, Threshold: 14400, Outcome: "suppressed"},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record %s: %v", entry.RunID, err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	if recent[0].RunID != "run-3" {
		t.Fatalf("expected newest entry first, got %s", recent[0].RunID)
	}
	if recent[0].Outcome != "suppressed" {
		t.Fatalf("unexpected outcome: %s", recent[0].Outcome)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to round-trip")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := history.Entry{
			RunID:     "run",
			Outcome:   "fresh",
			CreatedAt: time.Now(),
		}
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
}

func TestRecentEmptyStore(t *testing.T) {
	store := openStore(t)
	recent, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no entries, got %d", len(recent))
	}
}
