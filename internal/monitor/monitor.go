// Package monitor runs the single-pass staleness check.
//
// Each run reads the cron timestamp fresh, judges staleness, consults the
// notification state for duplicate suppression, and dispatches a ticket only
// when one is owed. State advances only after a confirmed-successful
// dispatch, so a failed dispatch stays retry-eligible on the next scheduled
// invocation. The whole design is idempotent per last-run window: at most one
// ticket per distinct cron timestamp.
package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cronwatch/internal/cms"
	"cronwatch/internal/history"
	"cronwatch/internal/staleness"
	"cronwatch/internal/state"
	"cronwatch/internal/ticket"
)

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeFresh      Outcome = "fresh"
	OutcomeSuppressed Outcome = "suppressed"
	OutcomeDispatched Outcome = "dispatched"
	OutcomeDryRun     Outcome = "dry-run"
	OutcomeFailed     Outcome = "failed"
)

const defaultThresholdSeconds = 14400

// Recorder receives the audit entry for each completed run.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Options assemble a Monitor from its collaborators.
type Options struct {
	SiteName         string
	SiteURL          string
	ThresholdSeconds int64
	DryRun           bool

	Source cms.Source
	Store  *state.Store
	// Dispatcher is nil when ticket credentials are not configured; that is
	// only an error once a dispatch is actually owed.
	Dispatcher ticket.Dispatcher
	History    Recorder
	Logger     *slog.Logger
	Clock      func() time.Time
}

// Monitor performs one check invocation.
type Monitor struct {
	opts   Options
	logger *slog.Logger
	clock  func() time.Time
}

// Result reports what a run decided and, when a payload was built, its
// contents (dry runs surface it without dispatching).
type Result struct {
	RunID       string
	Outcome     Outcome
	Evaluation  staleness.Evaluation
	LastSent    int64
	Summary     string
	Description string
}

// New validates collaborators and builds a Monitor.
func New(opts Options) (*Monitor, error) {
	if opts.Source == nil {
		return nil, errors.New("monitor requires a timestamp source")
	}
	if opts.Store == nil {
		return nil, errors.New("monitor requires a state store")
	}
	if opts.ThresholdSeconds <= 0 {
		opts.ThresholdSeconds = defaultThresholdSeconds
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Monitor{opts: opts, logger: logger, clock: clock}, nil
}

// Run executes the check state machine once.
func (m *Monitor) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := m.logger.With("run_id", runID)
	now := m.clock().Unix()

	lastRun := m.opts.Source.LastRun(ctx)
	eval := staleness.Evaluate(now, lastRun, m.opts.ThresholdSeconds)
	result := &Result{RunID: runID, Evaluation: eval}

	logger.Debug("evaluated cron staleness",
		"last_run", eval.LastRun, "age", eval.Age,
		"threshold", eval.Threshold, "stale", eval.Stale)

	if !eval.Stale {
		result.Outcome = OutcomeFresh
		logger.Info("cron is fresh, nothing to do", "age", eval.Age)
		m.record(ctx, logger, result, "")
		return result, nil
	}

	result.LastSent = m.opts.Store.Read()
	if result.LastSent >= eval.LastRun {
		result.Outcome = OutcomeSuppressed
		logger.Info("staleness already notified, suppressing duplicate",
			"last_sent", result.LastSent, "last_run", eval.LastRun)
		m.record(ctx, logger, result, "")
		return result, nil
	}

	result.Summary, result.Description = buildPayload(m.siteIdentity(), m.opts.SiteURL, eval)

	if m.opts.DryRun {
		result.Outcome = OutcomeDryRun
		logger.Info("dry run, skipping ticket dispatch", "summary", result.Summary)
		m.record(ctx, logger, result, "")
		return result, nil
	}

	if m.opts.Dispatcher == nil {
		result.Outcome = OutcomeFailed
		err := Wrap(ErrConfiguration, "tickets", "dispatch",
			"ticket credentials are required to dispatch (set tickets.base_url, tickets.project, tickets.username, tickets.api_key)", nil)
		m.record(ctx, logger, result, err.Error())
		return result, err
	}

	if err := m.opts.Dispatcher.Create(ctx, result.Summary, result.Description); err != nil {
		result.Outcome = OutcomeFailed
		wrapped := Wrap(ErrDispatch, "tickets", "create", "", err)
		logger.Error("ticket dispatch failed, state left untouched for retry", "error", err)
		m.record(ctx, logger, result, wrapped.Error())
		return result, wrapped
	}

	// Record the invocation time, not lastRun: lastSent >= lastRun then
	// suppresses every later run inside this window.
	if err := m.opts.Store.Write(now); err != nil {
		result.Outcome = OutcomeDispatched
		logger.Error("ticket dispatched but state write failed; next run may duplicate", "error", err)
		m.record(ctx, logger, result, err.Error())
		return result, Wrap(ErrStateRecord, "state", "write",
			"ticket was dispatched but the notification time could not be recorded", err)
	}

	result.Outcome = OutcomeDispatched
	logger.Info("ticket dispatched", "summary", result.Summary, "notified_at", now)
	m.record(ctx, logger, result, "")
	return result, nil
}

func (m *Monitor) siteIdentity() string {
	if m.opts.SiteName != "" {
		return m.opts.SiteName
	}
	if m.opts.SiteURL != "" {
		return m.opts.SiteURL
	}
	return "CMS"
}

func (m *Monitor) record(ctx context.Context, logger *slog.Logger, result *Result, detail string) {
	if m.opts.History == nil {
		return
	}
	entry := history.Entry{
		RunID:     result.RunID,
		Site:      m.opts.SiteURL,
		LastRun:   result.Evaluation.LastRun,
		Age:       result.Evaluation.Age,
		Threshold: result.Evaluation.Threshold,
		Outcome:   string(result.Outcome),
		Detail:    detail,
		CreatedAt: m.clock(),
	}
	if err := m.opts.History.Record(ctx, entry); err != nil {
		logger.Warn("record run history", "error", err)
	}
}
