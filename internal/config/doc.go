// Package config loads, normalizes, and validates cronwatch configuration.
//
// Configuration is a single TOML file (default ~/.config/cronwatch/config.toml,
// falling back to ./cronwatch.toml). Values decode over Default(), then pass
// through normalize (path expansion, env-var credential overrides, default
// fills) and Validate. The resulting struct is handed explicitly to every
// component; nothing reads ambient process state after load.
package config
