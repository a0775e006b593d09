package config

const (
	defaultStateDir         = "~/.local/share/cronwatch"
	defaultLogDir           = "~/.local/share/cronwatch/logs"
	defaultSourceBinary     = "drush"
	defaultSourceTimeout    = 30
	defaultThresholdSeconds = 14400
	defaultTicketPriority   = "high"
	defaultTicketStatus     = "new"
	defaultTicketType       = "bug"
	defaultRequestTimeout   = 10
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Source: Source{
			Binary:  defaultSourceBinary,
			Timeout: defaultSourceTimeout,
		},
		Monitor: Monitor{
			ThresholdSeconds: defaultThresholdSeconds,
			LockState:        true,
		},
		Tickets: Tickets{
			Priority:       defaultTicketPriority,
			Status:         defaultTicketStatus,
			TicketType:     defaultTicketType,
			RequestTimeout: defaultRequestTimeout,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
