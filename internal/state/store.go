// Package state persists the last-notified timestamp between invocations.
//
// The store is a single file holding one decimal epoch value. Reads never
// fail the run: a missing or unparseable file degrades to 0, which means "no
// prior notification" and therefore no suppression. Writes go through a temp
// file and rename so a crash mid-write cannot leave the store worse than
// empty.
package state

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// Store reads and writes the notification record for one (site, path) pair.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore builds a store over the given file path.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("state file path required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{path: path, logger: logger}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Read returns the recorded last-notified timestamp, or 0 when no record
// exists or the record is unparseable. Corruption is logged and recovered,
// never surfaced: losing suppression risks a duplicate ticket, which beats
// silently missing a stale cron forever.
func (s *Store) Read() int64 {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("read notification state", "path", s.path, "error", err)
		}
		return 0
	}

	value, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || value < 0 {
		s.logger.Warn("notification state unparseable, treating as unsent", "path", s.path)
		return 0
	}
	return value
}

// Write records value as the last-notified timestamp. The containing
// directory is created on first use and the content lands via temp file +
// rename.
func (s *Store) Write(value int64) error {
	if value < 0 {
		return fmt.Errorf("state value must be non-negative, got %d", value)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(strconv.FormatInt(value, 10) + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Lock guards the store against overlapping invocations. The zero-value
// behavior of the monitor assumes the scheduler never overlaps runs; the
// lock closes that gap when enabled.
type Lock struct {
	fl *flock.Flock
}

// NewLock creates an advisory lock next to the state file.
func NewLock(statePath string) (*Lock, error) {
	dir := filepath.Dir(statePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory %q: %w", dir, err)
	}
	return &Lock{fl: flock.New(statePath + ".lock")}, nil
}

// Acquire takes the lock without blocking. A held lock means another check
// is still running against the same state file.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire state lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("state file %s is locked by another cronwatch run", strings.TrimSuffix(l.fl.Path(), ".lock"))
	}
	return nil
}

// Release drops the lock. Safe to call after a failed Acquire.
func (l *Lock) Release() {
	_ = l.fl.Unlock()
}
