// ABOUTME: Grouped cause analysis linking observed symptoms to likely causes.
// ABOUTME: Findings follow a fixed cause order, not severity.
package scoring

import (
	"github.com/harperreed/betta/internal/models"
)

// Likelihood tags for findings.
const (
	VeryLikely = "Very likely"
	Possible   = "Possible"
)

// DirectMetricCondition is reported when a cause explains none of the active symptoms.
const DirectMetricCondition = "Direct metric condition"

// Symptom keys.
const (
	SymptomAppetite = "appetite"
	SymptomActivity = "activity"
	SymptomFins     = "fins"
	SymptomColor    = "color"
	SymptomGills    = "gills"
	SymptomBody     = "body"
	SymptomBehavior = "behavior"
)

// Symptom is an observed deviation from a healthy fish attribute.
type Symptom struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Finding is one active cause in the differential report.
type Finding struct {
	Label      string   `json:"label"`
	Likelihood string   `json:"likelihood"`
	Explains   []string `json:"explains"`
	Tip        string   `json:"tip"`
}

// ActiveSymptoms lists the fish attributes that are not at their healthy value.
func ActiveSymptoms(fish models.Fish) []Symptom {
	fields := []struct {
		key, label, value, healthy string
	}{
		{SymptomAppetite, "Appetite", fish.Appetite, models.AppetiteNormal},
		{SymptomActivity, "Activity", fish.Activity, models.ActivityNormal},
		{SymptomFins, "Fins", fish.FinCondition, models.FinHealthy},
		{SymptomColor, "Color", fish.ColorCondition, models.ColorVibrant},
		{SymptomGills, "Gills", fish.GillCondition, models.GillNormal},
		{SymptomBody, "Body", fish.BodyCondition, models.BodyNormal},
		{SymptomBehavior, "Behavior", fish.Behavior, models.BehaviorNormal},
	}

	var symptoms []Symptom
	for _, f := range fields {
		if f.value != "" && f.value != f.healthy {
			symptoms = append(symptoms, Symptom{Key: f.key, Label: f.label + ": " + f.value})
		}
	}
	return symptoms
}

type snapshot struct {
	tank  models.Tank
	fish  models.Fish
	water models.WaterReading
}

type cause struct {
	label    string
	active   func(s snapshot) bool
	likely   func(s snapshot) bool
	symptoms []string
	tip      string
}

var causes = []cause{
	{
		label:    "Ammonia poisoning",
		active:   func(s snapshot) bool { return s.water.Ammonia > 0 },
		likely:   func(s snapshot) bool { return s.water.Ammonia >= 0.5 },
		symptoms: []string{SymptomGills, SymptomActivity, SymptomAppetite, SymptomFins},
		tip:      "Do a large water change and dose a conditioner that binds ammonia.",
	},
	{
		label:    "Nitrite poisoning",
		active:   func(s snapshot) bool { return s.water.Nitrite > 0 },
		likely:   func(s snapshot) bool { return s.water.Nitrite >= 0.5 },
		symptoms: []string{SymptomGills, SymptomActivity, SymptomColor},
		tip:      "Change water and check that the filter media has not been replaced recently.",
	},
	{
		label:    "High nitrate",
		active:   func(s snapshot) bool { return s.water.Nitrate > NitrateWarn },
		likely:   func(s snapshot) bool { return s.water.Nitrate > NitrateCritical },
		symptoms: []string{SymptomFins, SymptomColor, SymptomAppetite, SymptomActivity},
		tip:      "Increase water change frequency and avoid overfeeding.",
	},
	{
		label: "Temperature stress",
		active: func(s snapshot) bool {
			return outside(s.water.Temperature, IdealTempMin, IdealTempMax)
		},
		likely: func(s snapshot) bool {
			return outside(s.water.Temperature, SafeTempMin, SafeTempMax)
		},
		symptoms: []string{SymptomActivity, SymptomAppetite, SymptomGills, SymptomColor},
		tip:      "Bring the temperature back to 78°F gradually.",
	},
	{
		label:    "pH imbalance",
		active:   func(s snapshot) bool { return outside(s.water.PH, IdealPHMin, IdealPHMax) },
		likely:   func(s snapshot) bool { return outside(s.water.PH, SafePHMin, SafePHMax) },
		symptoms: []string{SymptomBehavior, SymptomFins, SymptomGills, SymptomColor},
		tip:      "Stabilize pH with regular water changes rather than chemicals.",
	},
	{
		label:    "No heater",
		active:   func(s snapshot) bool { return !s.tank.Heater },
		likely:   func(s snapshot) bool { return s.water.Temperature < IdealTempMin },
		symptoms: []string{SymptomActivity, SymptomAppetite},
		tip:      "Install an adjustable heater. Room temperature is usually too cold for bettas.",
	},
	{
		label:    "No filter",
		active:   func(s snapshot) bool { return !s.tank.Filter },
		likely:   func(s snapshot) bool { return s.water.Ammonia > 0 || s.water.Nitrite > 0 },
		symptoms: []string{SymptomFins, SymptomGills},
		tip:      "Add a gentle sponge filter to keep the tank cycled.",
	},
	{
		label:    "Tank too small",
		active:   func(s snapshot) bool { return s.tank.SizeGallons < models.MinHealthyTankGallons },
		likely:   func(s snapshot) bool { return s.tank.SizeGallons < 2.5 },
		symptoms: []string{SymptomBehavior, SymptomActivity, SymptomFins},
		tip:      "Small tanks swing in temperature and chemistry. Upgrade to 5 gallons or more.",
	},
	{
		label:    "Fin damage or rot",
		active:   func(s snapshot) bool { return s.fish.FinCondition != "" && s.fish.FinCondition != models.FinHealthy },
		likely:   func(s snapshot) bool { return s.fish.FinCondition == models.FinRotting || s.fish.FinCondition == models.FinDamaged },
		symptoms: []string{SymptomFins},
		tip:      "Keep water clean and remove sharp decorations. Treat rot early.",
	},
	{
		label:    "Color loss or spots",
		active:   func(s snapshot) bool { return s.fish.ColorCondition != "" && s.fish.ColorCondition != models.ColorVibrant },
		likely:   func(s snapshot) bool { return s.fish.ColorCondition == models.ColorSpots },
		symptoms: []string{SymptomColor},
		tip:      "Look closely for velvet or ich. Gold dust or white spots need treatment.",
	},
	{
		label:    "Breathing difficulty",
		active:   func(s snapshot) bool { return s.fish.GillCondition != "" && s.fish.GillCondition != models.GillNormal },
		likely:   func(s snapshot) bool { return s.fish.GillCondition == models.GillGasping },
		symptoms: []string{SymptomGills},
		tip:      "Check surface access and oxygenation, then test the water.",
	},
	{
		label:    "Body condition change",
		active:   func(s snapshot) bool { return s.fish.BodyCondition != "" && s.fish.BodyCondition != models.BodyNormal },
		likely:   func(s snapshot) bool { return s.fish.BodyCondition == models.BodyBloated || s.fish.BodyCondition == models.BodyInjured },
		symptoms: []string{SymptomBody},
		tip:      "Fast for a day if bloated and watch for pineconing scales.",
	},
	{
		label:    "Abnormal behavior",
		active:   func(s snapshot) bool { return s.fish.Behavior != "" && s.fish.Behavior != models.BehaviorNormal },
		likely:   func(s snapshot) bool { return s.fish.Behavior == models.BehaviorFlashing || s.fish.Behavior == models.BehaviorClampedFins },
		symptoms: []string{SymptomBehavior},
		tip:      "Flashing and clamped fins often point to parasites or poor water.",
	},
}

// Analyze evaluates every candidate cause and reports the active ones.
func Analyze(tank models.Tank, fish models.Fish, water models.WaterReading) []Finding {
	s := snapshot{tank: tank, fish: fish, water: water}

	active := make(map[string]string)
	for _, sym := range ActiveSymptoms(fish) {
		active[sym.Key] = sym.Label
	}

	var findings []Finding
	for _, c := range causes {
		if !c.active(s) {
			continue
		}
		likelihood := Possible
		if c.likely(s) {
			likelihood = VeryLikely
		}

		var explains []string
		for _, key := range c.symptoms {
			if label, ok := active[key]; ok {
				explains = append(explains, label)
			}
		}
		if len(explains) == 0 {
			explains = []string{DirectMetricCondition}
		}

		findings = append(findings, Finding{
			Label:      c.label,
			Likelihood: likelihood,
			Explains:   explains,
			Tip:        c.tip,
		})
	}
	return findings
}
