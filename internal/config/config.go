package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Site identifies the monitored CMS site.
type Site struct {
	// URL scopes the timestamp query to one site of a multisite install.
	URL string `toml:"url"`
	// DisplayName overrides the site identity used in ticket payloads.
	DisplayName string `toml:"display_name"`
}

// Source configures the external timestamp tool.
type Source struct {
	Binary  string `toml:"binary"`
	Timeout int    `toml:"timeout"`
}

// Monitor configures staleness evaluation and notification state.
type Monitor struct {
	ThresholdSeconds int64  `toml:"threshold_seconds"`
	StateFile        string `toml:"state_file"`
	LockState        bool   `toml:"lock_state"`
}

// Tickets configures the issue tracker the monitor dispatches to.
// Credentials are required only when a dispatch is actually owed.
type Tickets struct {
	BaseURL        string `toml:"base_url"`
	Project        string `toml:"project"`
	Username       string `toml:"username"`
	APIKey         string `toml:"api_key"`
	Priority       string `toml:"priority"`
	Status         string `toml:"status"`
	TicketType     string `toml:"ticket_type"`
	RequestTimeout int    `toml:"request_timeout"`
}

// History configures the per-run audit trail.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for cronwatch.
//
// Sections by subsystem:
//   - Paths: state and log directories
//   - Site: monitored site identity and multisite scoping
//   - Source: the drush-style tool that reports cron_last
//   - Monitor: staleness threshold and notification state file
//   - Tickets: tracker endpoint, credentials, and ticket fields
//   - History: SQLite audit trail of check runs
//   - Logging: log level and format
type Config struct {
	Paths   Paths   `toml:"paths"`
	Site    Site    `toml:"site"`
	Source  Source  `toml:"source"`
	Monitor Monitor `toml:"monitor"`
	Tickets Tickets `toml:"tickets"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cronwatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file actually existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cronwatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the location of the run-history database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// TicketsConfigured reports whether the dispatch credentials are complete.
func (c *Config) TicketsConfigured() bool {
	return c.Tickets.BaseURL != "" &&
		c.Tickets.Project != "" &&
		c.Tickets.Username != "" &&
		c.Tickets.APIKey != ""
}

// CreateSample writes the embedded sample configuration to target.
func CreateSample(target string) error {
	return os.WriteFile(target, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
