// ABOUTME: Rulesets for the tank, fish, water, feeding, water change and profile forms.
// ABOUTME: Enumerated fish fields are restricted to their option lists here and nowhere else.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harperreed/betta/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// TankRules validates the tank form.
var TankRules = Ruleset{
	"size": {Required: true, Min: Float(1), Max: Float(500)},
}

// WaterRules validates the water test form.
var WaterRules = Ruleset{
	"temperature": {Required: true, Min: Float(32), Max: Float(120)},
	"ph":          {Required: true, Min: Float(0), Max: Float(14)},
	"ammonia":     {Required: true, Min: Float(0), Max: Float(10)},
	"nitrite":     {Required: true, Min: Float(0), Max: Float(10)},
	"nitrate":     {Required: true, Min: Float(0), Max: Float(200)},
}

// FishRules validates the fish health form.
var FishRules = Ruleset{
	"name":           {Required: true, MaxLength: 50},
	"color":          {MaxLength: 30},
	"appetite":       {Required: true, Custom: OneOf(models.AppetiteOptions...)},
	"activity":       {Required: true, Custom: OneOf(models.ActivityOptions...)},
	"finCondition":   {Required: true, Custom: OneOf(models.FinConditionOptions...)},
	"colorCondition": {Required: true, Custom: OneOf(models.ColorConditionOptions...)},
	"gillCondition":  {Required: true, Custom: OneOf(models.GillConditionOptions...)},
	"bodyCondition":  {Required: true, Custom: OneOf(models.BodyConditionOptions...)},
	"behavior":       {Required: true, Custom: OneOf(models.BehaviorOptions...)},
}

// FeedingRules validates the feeding log form.
var FeedingRules = Ruleset{
	"foodType": {Required: true, MaxLength: 50},
	"amount":   {Required: true, MaxLength: 50},
	"notes":    {MaxLength: 500},
}

// WaterChangeRules validates the water change form.
var WaterChangeRules = Ruleset{
	"percentage": {Required: true, Min: Float(1), Max: Float(100)},
	"notes":      {MaxLength: 500},
}

// ProfileRules validates sign-up and sign-in input.
var ProfileRules = Ruleset{
	"email":       {Required: true, MaxLength: 254, Pattern: emailPattern, Message: "Enter a valid email address"},
	"displayName": {MaxLength: 50},
}

// FeedingScheduleRules validates a feeding schedule entry.
var FeedingScheduleRules = Ruleset{
	"time":     {Required: true, Pattern: clockPattern, Message: "Use 24-hour HH:MM"},
	"foodType": {Required: true, MaxLength: 50},
	"days":     {Required: true, Custom: weekdays},
}

func weekdays(value any) string {
	days, ok := value.([]string)
	if !ok || len(days) == 0 {
		return RequiredMessage
	}
	for _, d := range days {
		if !models.IsOption(models.WeekdayAbbreviations, strings.ToLower(d)) {
			return fmt.Sprintf("Unknown day %q (use %s)", d, strings.Join(models.WeekdayAbbreviations, ", "))
		}
	}
	return ""
}

// TankForm converts a tank into form values.
func TankForm(t *models.Tank) map[string]any {
	return map[string]any{"size": t.SizeGallons}
}

// WaterForm converts a reading into form values.
func WaterForm(w *models.WaterReading) map[string]any {
	return map[string]any{
		"temperature": w.Temperature,
		"ph":          w.PH,
		"ammonia":     w.Ammonia,
		"nitrite":     w.Nitrite,
		"nitrate":     w.Nitrate,
	}
}

// FishForm converts a fish into form values.
func FishForm(f *models.Fish) map[string]any {
	return map[string]any{
		"name":           f.Name,
		"color":          f.Color,
		"appetite":       f.Appetite,
		"activity":       f.Activity,
		"finCondition":   f.FinCondition,
		"colorCondition": f.ColorCondition,
		"gillCondition":  f.GillCondition,
		"bodyCondition":  f.BodyCondition,
		"behavior":       f.Behavior,
	}
}

// FeedingForm converts a feeding log into form values.
func FeedingForm(l *models.FeedingLog) map[string]any {
	return map[string]any{"foodType": l.FoodType, "amount": l.Amount, "notes": deref(l.Notes)}
}

// WaterChangeForm converts a water change into form values.
func WaterChangeForm(c *models.WaterChange) map[string]any {
	return map[string]any{"percentage": c.Percentage, "notes": deref(c.Notes)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FeedingScheduleForm converts a schedule entry into form values.
func FeedingScheduleForm(e *models.FeedingScheduleEntry) map[string]any {
	return map[string]any{"time": e.Time, "foodType": e.FoodType, "days": e.Days}
}
