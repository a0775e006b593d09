// Package logging assembles the structured slog loggers used across
// cronwatch.
//
// It centralizes level and output plumbing: console (text) or JSON handlers,
// auto-selected by TTY when the format is unset, optionally teed to a log
// file in the configured log directory. Prefer these constructors over
// hand-rolled slog setup so every component logs with the same shape.
package logging
