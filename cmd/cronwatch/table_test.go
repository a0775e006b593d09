package main

import (
	"strings"
	"testing"
)

func TestRenderFieldsShowsEveryRow(t *testing.T) {
	out := renderFields([][2]string{
		{"Site", "example.org"},
		{"Stale", "yes"},
	})

	for _, want := range []string{"Field", "Value", "Site", "example.org", "Stale", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered fields:\n%s", want, out)
		}
	}
}

func TestRenderRunsShowsHeaderAndEntries(t *testing.T) {
	out := renderRuns([]runRow{
		{When: "2026-08-23T10:00:00Z", Outcome: "dispatched", LastRun: "never", Age: "4h0m0s", RunID: "abcd1234", Detail: ""},
		{When: "2026-08-23T09:00:00Z", Outcome: "fresh", LastRun: "never", Age: "1m0s", RunID: "ef567890", Detail: ""},
	})

	for _, want := range []string{"When", "Outcome", "Age", "dispatched", "fresh", "abcd1234"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered runs:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines < 5 {
		t.Fatalf("expected bordered multi-line table, got %d newlines:\n%s", lines, out)
	}
}
