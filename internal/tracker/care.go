// ABOUTME: Care reminders and feeding schedule for the data context.
// ABOUTME: Both are seeded with defaults the first time they are read.
package tracker

import (
	"strings"

	"github.com/harperreed/betta/internal/care"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/validation"
)

// Reminders returns every reminder, seeding the defaults when none are stored.
func (t *Tracker) Reminders() ([]models.CareReminder, error) {
	reminders, err := t.care.Reminders()
	if err != nil {
		return nil, t.fail("load reminders", err)
	}
	if len(reminders) > 0 {
		return reminders, nil
	}

	reminders = care.DefaultReminders(t.now())
	if err := t.care.SaveReminders(reminders); err != nil {
		return nil, t.fail("save reminders", err)
	}
	return reminders, nil
}

// UpcomingReminders returns reminders due within days.
func (t *Tracker) UpcomingReminders(days int) ([]models.CareReminder, error) {
	reminders, err := t.Reminders()
	if err != nil {
		return nil, err
	}
	return care.UpcomingReminders(reminders, days, t.now()), nil
}

// OverdueReminders returns reminders past due, most urgent first.
func (t *Tracker) OverdueReminders() ([]models.CareReminder, error) {
	reminders, err := t.Reminders()
	if err != nil {
		return nil, err
	}
	return care.OverdueReminders(reminders, t.now()), nil
}

// CompleteReminder marks the reminder matching idOrPrefix done and
// schedules its next occurrence.
func (t *Tracker) CompleteReminder(idOrPrefix string) (models.CareReminder, error) {
	reminders, err := t.Reminders()
	if err != nil {
		return models.CareReminder{}, err
	}
	i, err := care.FindReminder(reminders, idOrPrefix)
	if err != nil {
		return models.CareReminder{}, err
	}

	reminders[i] = care.MarkReminderComplete(reminders[i], t.now())
	if err := t.care.SaveReminders(reminders); err != nil {
		return models.CareReminder{}, t.fail("save reminders", err)
	}
	return reminders[i], nil
}

// SetReminderEnabled turns a reminder on or off.
func (t *Tracker) SetReminderEnabled(idOrPrefix string, enabled bool) (models.CareReminder, error) {
	reminders, err := t.Reminders()
	if err != nil {
		return models.CareReminder{}, err
	}
	i, err := care.FindReminder(reminders, idOrPrefix)
	if err != nil {
		return models.CareReminder{}, err
	}

	reminders[i].Enabled = enabled
	if err := t.care.SaveReminders(reminders); err != nil {
		return models.CareReminder{}, t.fail("save reminders", err)
	}
	return reminders[i], nil
}

// FeedingSchedule returns the schedule, seeding the default when none is stored.
func (t *Tracker) FeedingSchedule() ([]models.FeedingScheduleEntry, error) {
	schedule, err := t.care.FeedingSchedule()
	if err != nil {
		return nil, t.fail("load feeding schedule", err)
	}
	if len(schedule) > 0 {
		return schedule, nil
	}

	schedule = care.DefaultFeedingSchedule()
	if err := t.care.SaveFeedingSchedule(schedule); err != nil {
		return nil, t.fail("save feeding schedule", err)
	}
	return schedule, nil
}

// AddScheduledFeeding validates and appends a feeding schedule entry.
func (t *Tracker) AddScheduledFeeding(entry models.FeedingScheduleEntry) (models.FeedingScheduleEntry, error) {
	if result := validation.ValidateForm(validation.FeedingScheduleForm(&entry), validation.FeedingScheduleRules); !result.IsValid {
		return entry, result
	}
	schedule, err := t.FeedingSchedule()
	if err != nil {
		return entry, err
	}

	if entry.ID == "" {
		entry.ID = care.NewID()
	}
	for i, d := range entry.Days {
		entry.Days[i] = strings.ToLower(d)
	}
	schedule = append(schedule, entry)
	if err := t.care.SaveFeedingSchedule(schedule); err != nil {
		return entry, t.fail("save feeding schedule", err)
	}
	return entry, nil
}

// TodaysFeedings returns the enabled feedings planned for today.
func (t *Tracker) TodaysFeedings() ([]models.FeedingScheduleEntry, error) {
	schedule, err := t.FeedingSchedule()
	if err != nil {
		return nil, err
	}
	return care.TodaysFeedings(schedule, t.now()), nil
}
