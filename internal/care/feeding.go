// ABOUTME: Feeding schedule helpers for today's planned feedings.
// ABOUTME: Times are zero-padded 24h strings so they sort lexically.
package care

import (
	"sort"
	"time"

	"github.com/harperreed/betta/internal/models"
)

// Weekday returns the three-letter lowercase abbreviation used by schedules.
func Weekday(t time.Time) string {
	return models.WeekdayAbbreviations[t.Weekday()]
}

// TodaysFeedings returns enabled entries scheduled on now's weekday, ordered by time.
func TodaysFeedings(schedule []models.FeedingScheduleEntry, now time.Time) []models.FeedingScheduleEntry {
	today := Weekday(now)

	var out []models.FeedingScheduleEntry
	for _, e := range schedule {
		if !e.Enabled {
			continue
		}
		for _, d := range e.Days {
			if d == today {
				out = append(out, e)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}
