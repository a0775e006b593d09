// Package staleness decides whether the monitored cron is overdue.
//
// The evaluation is a pure comparison over epoch seconds so callers can feed
// it any clock. A last-run value of 0 represents "never ran / unknown" and is
// stale for every positive threshold; a negative age (clock skew between the
// monitor host and the CMS) is never stale.
package staleness

// Evaluation captures a single staleness decision and the inputs that
// produced it, so callers can log and render the verdict without recomputing.
type Evaluation struct {
	Now       int64
	LastRun   int64
	Threshold int64
	Age       int64
	Stale     bool
}

// Evaluate computes age = now - lastRun and judges the cron stale when the
// age strictly exceeds the threshold. lastRun must already be normalized to
// a value >= 0 (unknown input becomes 0 upstream).
func Evaluate(now, lastRun, threshold int64) Evaluation {
	if lastRun < 0 {
		lastRun = 0
	}
	age := now - lastRun
	return Evaluation{
		Now:       now,
		LastRun:   lastRun,
		Threshold: threshold,
		Age:       age,
		Stale:     age > threshold,
	}
}
