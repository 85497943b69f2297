// ABOUTME: Shared output helpers for betta CLI commands.
// ABOUTME: Time parsing, column padding and short IDs.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const timeLayout = "2006-01-02 15:04"

var faint = color.New(color.Faint)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// atFlag parses an optional --at value; empty means now.
func atFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: %w", s, err)
	}
	return t, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func notesSuffix(notes *string) string {
	if notes == nil || *notes == "" {
		return ""
	}
	return faint.Sprintf(" (%s)", truncate(*notes, 30))
}
