// ABOUTME: Care reminder scheduling: upcoming, overdue and completion.
// ABOUTME: Every function takes an explicit now so results are deterministic.
package care

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/betta/internal/models"
)

const day = 24 * time.Hour

// Sentinel errors for reminder lookup.
var (
	ErrReminderNotFound = errors.New("care: reminder not found")
	ErrAmbiguousID      = errors.New("care: ambiguous reminder id")
)

// UpcomingReminders returns enabled reminders due within horizonDays of now,
// earliest first.
func UpcomingReminders(reminders []models.CareReminder, horizonDays int, now time.Time) []models.CareReminder {
	horizon := now.Add(time.Duration(horizonDays) * day)

	var out []models.CareReminder
	for _, r := range reminders {
		if r.Enabled && !r.NextDue.After(horizon) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDue.Before(out[j].NextDue)
	})
	return out
}

// OverdueReminders returns enabled reminders whose due time has passed,
// most urgent priority first and then most overdue first.
func OverdueReminders(reminders []models.CareReminder, now time.Time) []models.CareReminder {
	var out []models.CareReminder
	for _, r := range reminders {
		if r.Enabled && r.NextDue.Before(now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return out[i].NextDue.Before(out[j].NextDue)
	})
	return out
}

// MarkReminderComplete records completion at now and schedules the next due
// time one interval after now. A custom reminder without CustomDays keeps its
// due time.
func MarkReminderComplete(r models.CareReminder, now time.Time) models.CareReminder {
	completed := now
	r.LastCompleted = &completed

	switch r.Frequency {
	case models.FrequencyDaily:
		r.NextDue = now.Add(day)
	case models.FrequencyWeekly:
		r.NextDue = now.Add(7 * day)
	case models.FrequencyBiweekly:
		r.NextDue = now.Add(14 * day)
	case models.FrequencyMonthly:
		r.NextDue = now.AddDate(0, 1, 0)
	case models.FrequencyCustom:
		if r.CustomDays != nil {
			r.NextDue = now.Add(time.Duration(*r.CustomDays) * day)
		}
	}
	return r
}

// FindReminder resolves a reminder by full ID or unique ID prefix.
func FindReminder(reminders []models.CareReminder, idOrPrefix string) (int, error) {
	match := -1
	for i, r := range reminders {
		if r.ID == idOrPrefix {
			return i, nil
		}
		if idOrPrefix != "" && strings.HasPrefix(strings.ToLower(r.ID), strings.ToLower(idOrPrefix)) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrReminderNotFound, idOrPrefix)
	}
	return match, nil
}

// FormatTimeRemaining describes the distance from now to due. Day granularity
// wins whenever at least one whole day remains or has passed.
func FormatTimeRemaining(due, now time.Time) string {
	diff := due.Sub(now)
	overdue := diff < 0
	if overdue {
		diff = -diff
	}

	days := int(diff / day)
	hours := int(diff / time.Hour)

	var amount string
	switch {
	case days > 0:
		amount = plural(days, "day")
	case hours > 0:
		amount = plural(hours, "hour")
	case overdue:
		return "Overdue"
	default:
		return "Soon"
	}

	if overdue {
		return amount + " overdue"
	}
	return "in " + amount
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
