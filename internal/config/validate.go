package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Ticket credentials are not
// required here; a check run fails on them only when a dispatch is owed.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateMonitor(); err != nil {
		return err
	}
	if err := c.validateTickets(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.Binary == "" {
		return errors.New("source.binary must be set")
	}
	if c.Source.Timeout <= 0 {
		return errors.New("source.timeout must be positive")
	}
	return nil
}

func (c *Config) validateMonitor() error {
	if c.Monitor.ThresholdSeconds <= 0 {
		return errors.New("monitor.threshold_seconds must be positive")
	}
	if c.Monitor.StateFile == "" {
		return errors.New("monitor.state_file must be set")
	}
	return nil
}

func (c *Config) validateTickets() error {
	if c.Tickets.RequestTimeout <= 0 {
		return errors.New("tickets.request_timeout must be positive")
	}

	// Partially-filled credentials are a misconfiguration, not an optional
	// feature; catch it at load time rather than at dispatch time.
	set := 0
	for _, v := range []string{c.Tickets.BaseURL, c.Tickets.Project, c.Tickets.Username, c.Tickets.APIKey} {
		if v != "" {
			set++
		}
	}
	if set > 0 && set < 4 {
		return errors.New("tickets.base_url, tickets.project, tickets.username, and tickets.api_key must be set together")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
