// Package format renders durations for the jump plan.
package format

import (
	"fmt"
	"time"
)

// FormatAge formats a duration as a human-readable age string.
// Uses compact format: "now", "5m", "2h", "3d", "2w", "3mo", "2y".
// Negative durations, which clock skew between commits can produce,
// are prefixed with "-".
func FormatAge(d time.Duration) string {
	if d < 0 {
		return "-" + FormatAge(-d)
	}
	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}
	if days < 30 {
		return fmt.Sprintf("%dw", days/7)
	}
	if days < 365 {
		return fmt.Sprintf("%dmo", days/30)
	}
	return fmt.Sprintf("%dy", days/365)
}

// Between describes how far before ref the instant t is, e.g. "3d before".
func Between(t, ref time.Time) string {
	d := ref.Sub(t)
	switch {
	case d > -time.Minute && d < time.Minute:
		return "same time as"
	case d < 0:
		return FormatAge(-d) + " after"
	default:
		return FormatAge(d) + " before"
	}
}
