// ABOUTME: Field and form validation rules for every input form.
// ABOUTME: Rules run in a fixed order; a custom predicate always has the final say.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RequiredMessage is returned for a missing required value.
const RequiredMessage = "This field is required"

// NotANumberMessage is returned for NaN or infinite values of a bounded field.
const NotANumberMessage = "Must be a number"

// Rule describes the checks applied to one field.
type Rule struct {
	Required  bool
	MinLength int // 0 disables the check
	MaxLength int // 0 disables the check
	Min       *float64
	Max       *float64
	Pattern   *regexp.Regexp
	// Message replaces the pattern failure text when set.
	Message string
	// Custom returns an error message or "" and overrides every earlier verdict.
	Custom func(value any) string
}

// Ruleset maps form field names to rules.
type Ruleset map[string]Rule

// Result is the outcome of validating a whole form.
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// Error renders the collected messages in field order.
func (r Result) Error() string {
	fields := make([]string, 0, len(r.Errors))
	for f := range r.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, r.Errors[f]))
	}
	return strings.Join(parts, "; ")
}

// ValidateField checks value against rule and returns an error message, or "" when valid.
func ValidateField(value any, rule Rule) string {
	empty := isEmpty(value)
	if rule.Required && empty {
		return RequiredMessage
	}
	if empty {
		return ""
	}

	var msg string
	fail := func(m string) {
		if msg == "" {
			msg = m
		}
	}

	if s, ok := value.(string); ok {
		n := len([]rune(s))
		if rule.MinLength > 0 && n < rule.MinLength {
			fail(fmt.Sprintf("Must be at least %d characters", rule.MinLength))
		}
		if rule.MaxLength > 0 && n > rule.MaxLength {
			fail(fmt.Sprintf("Must be no more than %d characters", rule.MaxLength))
		}
	}

	if num, ok := numeric(value); ok {
		if (rule.Min != nil || rule.Max != nil) && (math.IsNaN(num) || math.IsInf(num, 0)) {
			fail(NotANumberMessage)
		}
		if rule.Min != nil && num < *rule.Min {
			fail(fmt.Sprintf("Must be at least %s", formatNumber(*rule.Min)))
		}
		if rule.Max != nil && num > *rule.Max {
			fail(fmt.Sprintf("Must be no more than %s", formatNumber(*rule.Max)))
		}
	}

	if s, ok := value.(string); ok && rule.Pattern != nil && !rule.Pattern.MatchString(s) {
		if rule.Message != "" {
			fail(rule.Message)
		} else {
			fail("Invalid format")
		}
	}

	if rule.Custom != nil {
		return rule.Custom(value)
	}
	return msg
}

// ValidateForm applies ValidateField to every field declared in rules.
func ValidateForm(record map[string]any, rules Ruleset) Result {
	errs := make(map[string]string)
	for field, rule := range rules {
		if msg := ValidateField(record[field], rule); msg != "" {
			errs[field] = msg
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *string:
		return v == nil || *v == ""
	case *float64:
		return v == nil
	case *int:
		return v == nil
	case *bool:
		return v == nil
	}
	return false
}

// numeric reports the value as a float when it is a number or a string that parses as one.
func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case *float64:
		return *v, true
	case *int:
		return float64(*v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float returns a pointer for use as a Min or Max bound.
func Float(f float64) *float64 {
	return &f
}

// OneOf builds a custom predicate restricting a string to options.
func OneOf(options ...string) func(any) string {
	return func(value any) string {
		s, ok := value.(string)
		if !ok {
			return "Invalid selection"
		}
		for _, o := range options {
			if o == s {
				return ""
			}
		}
		return fmt.Sprintf("Must be one of: %s", strings.Join(options, ", "))
	}
}
