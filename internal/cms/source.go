// Package cms reads the monitored CMS's last-cron-run timestamp.
//
// The timestamp comes from an external drush-style command-line tool. Any
// failure to invoke the tool, empty output, or non-numeric output normalizes
// to 0: the monitor then regards cron as maximally stale instead of crashing,
// so a broken source still raises a ticket rather than hiding one.
package cms

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

const defaultTimeout = 30 * time.Second

// Source supplies the last-cron-run epoch timestamp, normalized to >= 0.
type Source interface {
	LastRun(ctx context.Context) int64
}

// Option configures the CLI source.
type Option func(*CLI)

// WithBinary overrides the default tool binary.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// WithSiteURL scopes the query to one site of a multisite install.
func WithSiteURL(url string) Option {
	return func(c *CLI) {
		c.siteURL = strings.TrimSpace(url)
	}
}

// WithTimeout bounds a single tool invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger attaches a logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI queries the CMS tool for the cron_last variable.
type CLI struct {
	binary  string
	siteURL string
	timeout time.Duration
	logger  *slog.Logger
}

// NewCLI constructs a CLI source using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:  "drush",
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// LastRun invokes the tool and parses its output as epoch seconds. Every
// failure mode collapses to 0 by contract; the cause is logged, never
// propagated.
func (c *CLI) LastRun(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := make([]string, 0, 4)
	if c.siteURL != "" {
		args = append(args, "--uri="+c.siteURL)
	}
	args = append(args, "vget", "cron_last", "--exact")

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		c.logger.Warn("timestamp source invocation failed, treating cron as never run",
			"binary", c.binary, "error", err)
		return 0
	}

	value, err := ParseTimestamp(stdout.String())
	if err != nil {
		c.logger.Warn("timestamp source output unparseable, treating cron as never run",
			"binary", c.binary, "output", truncate(stdout.String(), 120))
		return 0
	}
	return value
}

// ParseTimestamp extracts a non-negative epoch value from raw tool output.
// Surrounding whitespace and quoting are tolerated; anything else is an
// error so callers can apply the conservative default.
func ParseTimestamp(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.Trim(trimmed, `"'`)
	if trimmed == "" {
		return 0, errors.New("empty timestamp output")
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, errors.New("negative timestamp")
	}
	return value, nil
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

var _ Source = (*CLI)(nil)
