package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"cronwatch/internal/staleness"
)

// buildPayload renders the human-readable ticket content for a stale cron.
func buildPayload(site, siteURL string, eval staleness.Evaluation) (summary, description string) {
	now := time.Unix(eval.Now, 0).UTC()

	var lastRunText string
	if eval.LastRun == 0 {
		lastRunText = "never (timestamp unavailable)"
		summary = fmt.Sprintf("%s cron has no recorded run", site)
	} else {
		lastRun := time.Unix(eval.LastRun, 0).UTC()
		lastRunText = fmt.Sprintf("%s (%s)", lastRun.Format(time.RFC1123), humanize.RelTime(lastRun, now, "ago", "from now"))
		summary = fmt.Sprintf("%s cron overdue: last ran %s", site, humanize.RelTime(lastRun, now, "ago", "from now"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scheduled cron on %s has exceeded the staleness threshold.\n\n", site)
	fmt.Fprintf(&b, "Last successful run: %s\n", lastRunText)
	fmt.Fprintf(&b, "Measured age: %d seconds (threshold %d seconds)\n", eval.Age, eval.Threshold)
	fmt.Fprintf(&b, "Checked at: %s\n", now.Format(time.RFC1123))
	if siteURL != "" {
		fmt.Fprintf(&b, "Site: %s\n", siteURL)
	}
	b.WriteString("\nThis ticket was opened automatically by cronwatch. ")
	b.WriteString("It will not be reopened for this staleness window; a new ticket is only raised after cron succeeds and goes stale again.")

	return summary, b.String()
}
