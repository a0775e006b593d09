package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSite()
	c.normalizeSource()
	c.normalizeTickets()
	if err := c.normalizeMonitor(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSite() {
	c.Site.URL = strings.TrimSpace(c.Site.URL)
	c.Site.DisplayName = strings.TrimSpace(c.Site.DisplayName)
}

func (c *Config) normalizeSource() {
	c.Source.Binary = strings.TrimSpace(c.Source.Binary)
	if c.Source.Binary == "" {
		c.Source.Binary = defaultSourceBinary
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = defaultSourceTimeout
	}
}

func (c *Config) normalizeTickets() {
	if c.Tickets.Username == "" {
		if value, ok := os.LookupEnv("CRONWATCH_API_USER"); ok {
			c.Tickets.Username = value
		}
	}
	if c.Tickets.APIKey == "" {
		if value, ok := os.LookupEnv("CRONWATCH_API_KEY"); ok {
			c.Tickets.APIKey = value
		}
	}
	c.Tickets.BaseURL = strings.TrimRight(strings.TrimSpace(c.Tickets.BaseURL), "/")
	c.Tickets.Project = strings.TrimSpace(c.Tickets.Project)
	if strings.TrimSpace(c.Tickets.Priority) == "" {
		c.Tickets.Priority = defaultTicketPriority
	}
	if strings.TrimSpace(c.Tickets.Status) == "" {
		c.Tickets.Status = defaultTicketStatus
	}
	if strings.TrimSpace(c.Tickets.TicketType) == "" {
		c.Tickets.TicketType = defaultTicketType
	}
	if c.Tickets.RequestTimeout <= 0 {
		c.Tickets.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeMonitor() error {
	if c.Monitor.StateFile == "" {
		c.Monitor.StateFile = c.StateFileFor(c.Site.URL)
		return nil
	}
	expanded, err := expandPath(c.Monitor.StateFile)
	if err != nil {
		return fmt.Errorf("monitor.state_file: %w", err)
	}
	c.Monitor.StateFile = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// StateFileFor derives the notification state file path for a site URL, so
// each monitored site keeps its own record under the state directory.
func (c *Config) StateFileFor(siteURL string) string {
	return filepath.Join(c.Paths.StateDir, siteSlug(siteURL)+".last-notified")
}

// siteSlug turns a site URL into a filesystem-safe state file stem so each
// monitored site keeps its own notification record.
func siteSlug(url string) string {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return "default"
	}
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.Trim(trimmed, "/")

	var b strings.Builder
	for _, r := range strings.ToLower(trimmed) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "default"
	}
	return slug
}
