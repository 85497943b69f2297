// ABOUTME: Composite health score and tier classification for a betta.
// ABOUTME: Penalties are independent and sequential; the result is clamped at zero.
package scoring

import (
	"github.com/harperreed/betta/internal/models"
)

// Water bands in Fahrenheit and ppm.
const (
	IdealTempMin = 75.0
	IdealTempMax = 82.0
	SafeTempMin  = 70.0
	SafeTempMax  = 85.0

	IdealPHMin = 6.5
	IdealPHMax = 7.5
	SafePHMin  = 6.0
	SafePHMax  = 8.0

	NitrateWarn     = 20.0
	NitrateCritical = 40.0
)

// MaxScore is the score of a betta with no deviations.
const MaxScore = 100

// ComputeHealthScore maps fish and water state to an integer in [0,100].
func ComputeHealthScore(fish models.Fish, water models.WaterReading) int {
	score := MaxScore

	if outside(water.Temperature, IdealTempMin, IdealTempMax) {
		score -= 10
	}
	if outside(water.Temperature, SafeTempMin, SafeTempMax) {
		score -= 30
	}

	if outside(water.PH, IdealPHMin, IdealPHMax) {
		score -= 5
	}
	if outside(water.PH, SafePHMin, SafePHMax) {
		score -= 20
	}

	if water.Ammonia > 0 {
		score -= 40
	}
	if water.Nitrite > 0 {
		score -= 35
	}

	if water.Nitrate > NitrateWarn {
		score -= 10
	}
	if water.Nitrate > NitrateCritical {
		score -= 25
	}

	switch fish.Appetite {
	case models.AppetiteEatingLess:
		score -= 10
	case models.AppetiteNotEating:
		score -= 30
	}

	switch fish.Activity {
	case models.ActivityLessActive:
		score -= 10
	case models.ActivityLethargic, models.ActivityLyingAtBottom:
		score -= 25
	}

	switch fish.FinCondition {
	case models.FinMinorDamage:
		score -= 5
	case models.FinDamaged, models.FinRotting:
		score -= 20
	}

	switch fish.ColorCondition {
	case models.ColorFading:
		score -= 5
	case models.ColorSpots:
		score -= 15
	}

	switch fish.GillCondition {
	case models.GillRapidBreathing:
		score -= 15
	case models.GillGasping:
		score -= 25
	}

	switch fish.BodyCondition {
	case models.BodyThin:
		score -= 10
	case models.BodyBloated, models.BodyInjured:
		score -= 20
	}

	if score < 0 {
		return 0
	}
	return score
}

// Level is a qualitative health tier.
type Level string

const (
	LevelExcellent Level = "Excellent"
	LevelGood      Level = "Good"
	LevelFair      Level = "Fair"
	LevelPoor      Level = "Poor"
	LevelCritical  Level = "Critical"
)

// Classification pairs a tier with its description.
type Classification struct {
	Level       Level  `json:"level"`
	Description string `json:"description"`
}

var tiers = []struct {
	min int
	Classification
}{
	{90, Classification{LevelExcellent, "Your betta is thriving. Keep up the great care!"}},
	{75, Classification{LevelGood, "Your betta is healthy with a few things to watch."}},
	{60, Classification{LevelFair, "Some conditions need attention soon."}},
	{40, Classification{LevelPoor, "Several problems are affecting your betta's health."}},
}

// ClassifyScore returns the first tier whose lower bound the score reaches.
func ClassifyScore(score int) Classification {
	for _, t := range tiers {
		if score >= t.min {
			return t.Classification
		}
	}
	return Classification{LevelCritical, "Immediate action is needed to protect your betta."}
}

func outside(v, lo, hi float64) bool {
	return v < lo || v > hi
}
