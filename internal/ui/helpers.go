package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// pad right-pads or truncates s to exactly width columns plus a gap.
func pad(s string, width int) string {
	s = truncate(s, width-1)
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncate shortens s to at most maxLen characters with an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// statusLabel returns the display label for a job status.
func statusLabel(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "applied":
		return "Applied"
	case "interviewing":
		return "Interviewing"
	case "offer":
		return "Offer"
	case "rejected":
		return "Rejected"
	case "":
		return "—"
	default:
		return titleWord(status)
	}
}

func titleWord(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// formatSalary prefers the explicit range, then the numeric target.
func formatSalary(target float64, salaryRange string) string {
	if salaryRange != "" {
		return salaryRange
	}
	if target <= 0 {
		return "—"
	}
	if target >= 1000 {
		return fmt.Sprintf("$%.0fk", target/1000)
	}
	return fmt.Sprintf("$%.0f", target)
}

// formatDay renders an RFC 3339 timestamp as a short date.
func formatDay(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("Jan 02")
}

// formatAlertTime renders an alert's scheduled time relative to now when it
// falls within a day, otherwise as a date.
func formatAlertTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	d := time.Until(t)
	switch {
	case d < -time.Minute:
		return t.Format("Jan 02 15:04")
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("in %dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("in %dh", int(d.Hours()))
	default:
		return t.Format("Jan 02 15:04")
	}
}
