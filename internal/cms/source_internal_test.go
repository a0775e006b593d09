package cms

import (
	"context"
	"os/exec"
	"testing"
)

func stubCommand(t *testing.T, name string, args ...string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		return exec.CommandContext(ctx, name, args...)
	}
	t.Cleanup(func() { commandContext = original })
}

func TestLastRunParsesEpochOutput(t *testing.T) {
	stubCommand(t, "echo", "1700000000")

	cli := NewCLI()
	if got := cli.LastRun(context.Background()); got != 1700000000 {
		t.Fatalf("expected 1700000000, got %d", got)
	}
}

func TestLastRunQuotedOutput(t *testing.T) {
	stubCommand(t, "echo", `"1700000123"`)

	cli := NewCLI()
	if got := cli.LastRun(context.Background()); got != 1700000123 {
		t.Fatalf("expected 1700000123, got %d", got)
	}
}

func TestLastRunNonNumericOutputNormalizesToZero(t *testing.T) {
	stubCommand(t, "echo", "cron has never run")

	cli := NewCLI()
	if got := cli.LastRun(context.Background()); got != 0 {
		t.Fatalf("expected 0 for non-numeric output, got %d", got)
	}
}

func TestLastRunEmptyOutputNormalizesToZero(t *testing.T) {
	stubCommand(t, "true")

	cli := NewCLI()
	if got := cli.LastRun(context.Background()); got != 0 {
		t.Fatalf("expected 0 for empty output, got %d", got)
	}
}

func TestLastRunInvocationFailureNormalizesToZero(t *testing.T) {
	stubCommand(t, "false")

	cli := NewCLI()
	if got := cli.LastRun(context.Background()); got != 0 {
		t.Fatalf("expected 0 for failed invocation, got %d", got)
	}
}

func TestLastRunMissingBinaryNormalizesToZero(t *testing.T) {
	cli := NewCLI(WithBinary("cronwatch-no-such-tool"))
	if got := cli.LastRun(context.Background()); got != 0 {
		t.Fatalf("expected 0 for missing binary, got %d", got)
	}
}

func TestSiteURLBecomesURIFlag(t *testing.T) {
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{}, args...)
		return exec.CommandContext(ctx, "echo", "1")
	}
	t.Cleanup(func() { commandContext = original })

	cli := NewCLI(WithSiteURL("https://example.org"))
	cli.LastRun(context.Background())

	if len(captured) == 0 || captured[0] != "--uri=https://example.org" {
		t.Fatalf("expected --uri flag first, got %v", captured)
	}
}
