package monitor

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for the failure kinds that terminate a run. Source and
// state-read anomalies never appear here; they degrade to conservative
// defaults inside their packages.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrDispatch      = errors.New("dispatch failure")
	// ErrStateRecord means the ticket WAS created but the notification time
	// could not be persisted, so the next run may open a duplicate.
	ErrStateRecord = errors.New("notification record failure")
)

// Wrap builds an error that carries component context while tagging it with
// the provided marker, so callers can classify with errors.Is.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrDispatch
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "monitor failure"
	}
	return strings.Join(parts, ": ")
}
