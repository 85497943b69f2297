// ABOUTME: Default care reminders and feeding schedule for a new tank.
// ABOUTME: IDs are ULIDs so they sort by creation time.
package care

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/betta/internal/models"
)

// NewID returns a fresh identifier for reminders and schedule entries.
func NewID() string {
	return ulid.Make().String()
}

// DefaultReminders returns the starter reminders, each first due one interval from now.
func DefaultReminders(now time.Time) []models.CareReminder {
	return []models.CareReminder{
		{
			ID:          NewID(),
			Type:        models.ReminderWaterChange,
			Title:       "Partial water change",
			Description: "Replace 25% of the water with conditioned water at tank temperature.",
			Frequency:   models.FrequencyWeekly,
			NextDue:     now.Add(7 * day),
			Priority:    models.PriorityHigh,
			Enabled:     true,
		},
		{
			ID:          NewID(),
			Type:        models.ReminderWaterTest,
			Title:       "Test water parameters",
			Description: "Check temperature, pH, ammonia, nitrite and nitrate.",
			Frequency:   models.FrequencyWeekly,
			NextDue:     now.Add(7 * day),
			Priority:    models.PriorityMedium,
			Enabled:     true,
		},
		{
			ID:          NewID(),
			Type:        models.ReminderFilterClean,
			Title:       "Rinse filter media",
			Description: "Rinse the sponge in removed tank water. Never use tap water.",
			Frequency:   models.FrequencyMonthly,
			NextDue:     now.AddDate(0, 1, 0),
			Priority:    models.PriorityMedium,
			Enabled:     true,
		},
		{
			ID:          NewID(),
			Type:        models.ReminderTankClean,
			Title:       "Vacuum substrate",
			Description: "Gravel vacuum during a water change and wipe the glass.",
			Frequency:   models.FrequencyBiweekly,
			NextDue:     now.Add(14 * day),
			Priority:    models.PriorityLow,
			Enabled:     true,
		},
		{
			ID:          NewID(),
			Type:        models.ReminderHealthCheck,
			Title:       "Health check",
			Description: "Look over fins, color, gills and body, then log an observation.",
			Frequency:   models.FrequencyDaily,
			NextDue:     now.Add(day),
			Priority:    models.PriorityMedium,
			Enabled:     true,
		},
	}
}

// DefaultFeedingSchedule returns a twice-daily pellet schedule with one
// fasting day.
func DefaultFeedingSchedule() []models.FeedingScheduleEntry {
	feedDays := []string{"mon", "tue", "wed", "thu", "fri", "sat"}
	return []models.FeedingScheduleEntry{
		{ID: NewID(), Time: "08:00", FoodType: "Pellets", Amount: "2-3 pellets", Days: feedDays, Enabled: true},
		{ID: NewID(), Time: "18:00", FoodType: "Pellets", Amount: "2-3 pellets", Days: feedDays, Enabled: true},
	}
}
