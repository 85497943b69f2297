// ABOUTME: CareReminder and FeedingScheduleEntry models for routine care.
// ABOUTME: Reminders carry mutable schedule state; schedules are declarative.
package models

import (
	"time"
)

// ReminderType identifies the kind of care task.
type ReminderType string

const (
	ReminderWaterChange ReminderType = "water_change"
	ReminderWaterTest   ReminderType = "water_test"
	ReminderFilterClean ReminderType = "filter_clean"
	ReminderTankClean   ReminderType = "tank_clean"
	ReminderHealthCheck ReminderType = "health_check"
	ReminderCustom      ReminderType = "custom"
)

// Frequency is how often a reminder repeats.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyCustom   Frequency = "custom"
)

// Priority orders overdue reminders.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank returns a sortable weight; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// CareReminder is a recurring care task.
type CareReminder struct {
	ID            string       `json:"id"`
	Type          ReminderType `json:"type"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Frequency     Frequency    `json:"frequency"`
	CustomDays    *int         `json:"custom_days,omitempty"`
	LastCompleted *time.Time   `json:"last_completed,omitempty"`
	NextDue       time.Time    `json:"next_due"`
	Priority      Priority     `json:"priority"`
	Enabled       bool         `json:"enabled"`
}

// Weekday abbreviations used by feeding schedules.
var WeekdayAbbreviations = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// FeedingScheduleEntry is one planned daily feeding.
type FeedingScheduleEntry struct {
	ID       string   `json:"id"`
	Time     string   `json:"time"` // zero-padded 24h HH:MM
	FoodType string   `json:"food_type"`
	Amount   string   `json:"amount"`
	Days     []string `json:"days"`
	Enabled  bool     `json:"enabled"`
}
