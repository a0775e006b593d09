// cronwatch checks a CMS's cron heartbeat and opens a tracking ticket when
// it goes stale. One invocation is one complete check; recurrence comes from
// the operator's scheduler, not from this process.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "cronwatch: %v\n", err)
	}
	os.Exit(1)
}
