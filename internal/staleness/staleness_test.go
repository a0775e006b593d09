package staleness_test

import (
	"testing"

	"cronwatch/internal/staleness"
)

func TestEvaluate(t *testing.T) {
	const now = int64(1_700_000_000)
	const threshold = int64(14400)

	tests := []struct {
		name      string
		lastRun   int64
		wantAge   int64
		wantStale bool
	}{
		{
			name:      "recent run is fresh",
			lastRun:   now - 100,
			wantAge:   100,
			wantStale: false,
		},
		{
			name:      "age exactly at threshold is fresh",
			lastRun:   now - threshold,
			wantAge:   threshold,
			wantStale: false,
		},
		{
			name:      "age one past threshold is stale",
			lastRun:   now - threshold - 1,
			wantAge:   threshold + 1,
			wantStale: true,
		},
		{
			name:      "old run is stale",
			lastRun:   now - 20000,
			wantAge:   20000,
			wantStale: true,
		},
		{
			name:      "unknown last run is maximally stale",
			lastRun:   0,
			wantAge:   now,
			wantStale: true,
		},
		{
			name:      "clock skew yields negative age and is never stale",
			lastRun:   now + 500,
			wantAge:   -500,
			wantStale: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eval := staleness.Evaluate(now, tc.lastRun, threshold)
			if eval.Age != tc.wantAge {
				t.Fatalf("expected age %d, got %d", tc.wantAge, eval.Age)
			}
			if eval.Stale != tc.wantStale {
				t.Fatalf("expected stale=%v, got %v", tc.wantStale, eval.Stale)
			}
		})
	}
}

func TestEvaluateNormalizesNegativeLastRun(t *testing.T) {
	eval := staleness.Evaluate(1000, -42, 100)
	if eval.LastRun != 0 {
		t.Fatalf("expected negative last run to normalize to 0, got %d", eval.LastRun)
	}
	if !eval.Stale {
		t.Fatal("expected normalized last run of 0 to be stale")
	}
}
