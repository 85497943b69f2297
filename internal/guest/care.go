// ABOUTME: Device-local care reminders and feeding schedule.
// ABOUTME: Stored here in every mode; never synced to an account backend.
package guest

import (
	"github.com/harperreed/betta/internal/models"
)

// Reminders returns the stored reminders. Missing or malformed data reads as nil.
func (s *Store) Reminders() ([]models.CareReminder, error) {
	return readList[models.CareReminder](s, KeyCareReminders)
}

// SaveReminders replaces the stored reminders.
func (s *Store) SaveReminders(reminders []models.CareReminder) error {
	return s.write(KeyCareReminders, reminders)
}

// FeedingSchedule returns the stored feeding schedule. Missing or malformed
// data reads as nil.
func (s *Store) FeedingSchedule() ([]models.FeedingScheduleEntry, error) {
	return readList[models.FeedingScheduleEntry](s, KeyFeedingSchedule)
}

// SaveFeedingSchedule replaces the stored feeding schedule.
func (s *Store) SaveFeedingSchedule(schedule []models.FeedingScheduleEntry) error {
	return s.write(KeyFeedingSchedule, schedule)
}
