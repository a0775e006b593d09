package main

import (
	"fmt"
	"time"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatEpoch(value int64) string {
	if value <= 0 {
		return "never"
	}
	return time.Unix(value, 0).UTC().Format(time.RFC1123)
}

func formatSeconds(value int64) string {
	if value < 0 {
		return fmt.Sprintf("-%s", (time.Duration(-value) * time.Second).String())
	}
	return (time.Duration(value) * time.Second).String()
}
