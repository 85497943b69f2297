// ABOUTME: Tests for field and form validation.
// ABOUTME: Covers rule ordering, numeric parsing and custom predicate precedence.
package validation

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/harperreed/betta/internal/models"
)

func TestValidateFieldRequired(t *testing.T) {
	if got := ValidateField(nil, Rule{Required: true}); got != RequiredMessage {
		t.Errorf("ValidateField(nil, required) = %q, want %q", got, RequiredMessage)
	}
	if got := ValidateField("", Rule{Required: true}); got != RequiredMessage {
		t.Errorf("ValidateField(\"\", required) = %q, want %q", got, RequiredMessage)
	}
	if got := ValidateField(nil, Rule{Required: false}); got != "" {
		t.Errorf("ValidateField(nil, optional) = %q, want no error", got)
	}
}

func TestValidateFieldEmptyOptionalSkipsEverything(t *testing.T) {
	rule := Rule{
		MinLength: 3,
		Custom:    func(any) string { return "custom ran" },
	}
	if got := ValidateField("", rule); got != "" {
		t.Errorf("ValidateField = %q, want no error for empty optional field", got)
	}
}

func TestValidateFieldOrder(t *testing.T) {
	tests := []struct {
		name  string
		value any
		rule  Rule
		want  string
	}{
		{
			name:  "too short",
			value: "ab",
			rule:  Rule{MinLength: 3},
			want:  "Must be at least 3 characters",
		},
		{
			name:  "too long",
			value: "abcdef",
			rule:  Rule{MaxLength: 5},
			want:  "Must be no more than 5 characters",
		},
		{
			name:  "below min",
			value: 4.0,
			rule:  Rule{Min: Float(5)},
			want:  "Must be at least 5",
		},
		{
			name:  "above max",
			value: 12,
			rule:  Rule{Max: Float(10.5)},
			want:  "Must be no more than 10.5",
		},
		{
			name:  "numeric string checked against bounds",
			value: "150",
			rule:  Rule{Max: Float(100)},
			want:  "Must be no more than 100",
		},
		{
			name:  "NaN fails bounded field",
			value: math.NaN(),
			rule:  Rule{Min: Float(0), Max: Float(14)},
			want:  NotANumberMessage,
		},
		{
			name:  "NaN string fails bounded field",
			value: "NaN",
			rule:  Rule{Min: Float(32)},
			want:  NotANumberMessage,
		},
		{
			name:  "infinity fails bounded field",
			value: math.Inf(1),
			rule:  Rule{Max: Float(100)},
			want:  NotANumberMessage,
		},
		{
			name:  "NaN string allowed without bounds",
			value: "nan",
			rule:  Rule{MaxLength: 50},
			want:  "",
		},
		{
			name:  "length failure wins over numeric failure",
			value: "1",
			rule:  Rule{MinLength: 2, Min: Float(5)},
			want:  "Must be at least 2 characters",
		},
		{
			name:  "pattern mismatch",
			value: "abc",
			rule:  Rule{Pattern: regexp.MustCompile(`^\d+$`)},
			want:  "Invalid format",
		},
		{
			name:  "pattern with message",
			value: "abc",
			rule:  Rule{Pattern: regexp.MustCompile(`^\d+$`), Message: "Digits only"},
			want:  "Digits only",
		},
		{
			name:  "pattern ignored for numbers",
			value: 42.0,
			rule:  Rule{Pattern: regexp.MustCompile(`^x$`)},
			want:  "",
		},
		{
			name:  "all pass",
			value: "hello",
			rule:  Rule{Required: true, MinLength: 2, MaxLength: 10},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateField(tt.value, tt.rule); got != tt.want {
				t.Errorf("ValidateField(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestValidateFieldCustomHasFinalSay(t *testing.T) {
	// Custom replaces an earlier failure.
	rule := Rule{MinLength: 10, Custom: func(any) string { return "" }}
	if got := ValidateField("short", rule); got != "" {
		t.Errorf("custom returning none should clear earlier failure, got %q", got)
	}

	// Custom produces a message even when everything else passed.
	rule = Rule{MaxLength: 10, Custom: func(any) string { return "nope" }}
	if got := ValidateField("fine", rule); got != "nope" {
		t.Errorf("custom message = %q, want %q", got, "nope")
	}

	// Required failure is reported before custom runs.
	rule = Rule{Required: true, Custom: func(any) string { return "" }}
	if got := ValidateField(nil, rule); got != RequiredMessage {
		t.Errorf("required failure = %q, want %q", got, RequiredMessage)
	}
}

func TestValidateForm(t *testing.T) {
	rules := Ruleset{
		"name": {Required: true},
		"size": {Required: true, Min: Float(1)},
	}

	res := ValidateForm(map[string]any{"name": "Finn", "size": 5.0}, rules)
	if !res.IsValid {
		t.Errorf("expected valid form, got errors %v", res.Errors)
	}

	res = ValidateForm(map[string]any{"size": 0.0}, rules)
	if res.IsValid {
		t.Fatal("expected invalid form")
	}
	if len(res.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(res.Errors))
	}
	if res.Errors["name"] != RequiredMessage {
		t.Errorf("Errors[name] = %q, want %q", res.Errors["name"], RequiredMessage)
	}
	if !strings.Contains(res.Error(), "size: Must be at least 1") {
		t.Errorf("Error() = %q, want size message", res.Error())
	}
}

func TestFishRulesRejectUnknownOption(t *testing.T) {
	f := models.NewFish("Finn", "red")
	if res := ValidateForm(FishForm(f), FishRules); !res.IsValid {
		t.Fatalf("default fish should be valid, got %v", res.Errors)
	}

	f.Appetite = "Ravenous"
	res := ValidateForm(FishForm(f), FishRules)
	if res.IsValid {
		t.Fatal("expected invalid appetite to fail")
	}
	if !strings.HasPrefix(res.Errors["appetite"], "Must be one of") {
		t.Errorf("Errors[appetite] = %q", res.Errors["appetite"])
	}
}

func TestWaterRules(t *testing.T) {
	w := models.NewWaterReading(78, 7, 0, 0, 10)
	if res := ValidateForm(WaterForm(w), WaterRules); !res.IsValid {
		t.Errorf("nominal reading should be valid, got %v", res.Errors)
	}

	w.PH = 15
	res := ValidateForm(WaterForm(w), WaterRules)
	if res.Errors["ph"] != "Must be no more than 14" {
		t.Errorf("Errors[ph] = %q", res.Errors["ph"])
	}

	w.PH = 7
	w.Temperature = math.NaN()
	res = ValidateForm(WaterForm(w), WaterRules)
	if res.IsValid || res.Errors["temperature"] != NotANumberMessage {
		t.Errorf("Errors[temperature] = %q, want %q", res.Errors["temperature"], NotANumberMessage)
	}
	if got := ValidateField("NaN", WaterRules["temperature"]); got != NotANumberMessage {
		t.Errorf("ValidateField(\"NaN\", temperature) = %q, want %q", got, NotANumberMessage)
	}
}

func TestFeedingScheduleRules(t *testing.T) {
	e := &models.FeedingScheduleEntry{Time: "08:00", FoodType: "pellets", Days: []string{"mon", "wed"}}
	if res := ValidateForm(FeedingScheduleForm(e), FeedingScheduleRules); !res.IsValid {
		t.Errorf("expected valid entry, got %v", res.Errors)
	}

	e.Time = "8:00"
	e.Days = []string{"funday"}
	res := ValidateForm(FeedingScheduleForm(e), FeedingScheduleRules)
	if res.Errors["time"] != "Use 24-hour HH:MM" {
		t.Errorf("Errors[time] = %q", res.Errors["time"])
	}
	if !strings.HasPrefix(res.Errors["days"], "Unknown day") {
		t.Errorf("Errors[days] = %q", res.Errors["days"])
	}
}

func TestProfileRulesEmail(t *testing.T) {
	res := ValidateForm(map[string]any{"email": "not-an-email"}, ProfileRules)
	if res.Errors["email"] != "Enter a valid email address" {
		t.Errorf("Errors[email] = %q", res.Errors["email"])
	}
	res = ValidateForm(map[string]any{"email": "owner@example.com"}, ProfileRules)
	if !res.IsValid {
		t.Errorf("expected valid email, got %v", res.Errors)
	}
}
