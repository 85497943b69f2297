// ABOUTME: Legacy onboarding BettaScore in Celsius and the scoring strategy interface.
// ABOUTME: The two score tables are deliberately kept separate and never merged.
package scoring

import (
	"github.com/harperreed/betta/internal/models"
)

// Celsius band used by the onboarding score.
const (
	LegacyTempMinC = 24.0
	LegacyTempMaxC = 28.0
)

// BettaScoreInput is the flat onboarding form.
type BettaScoreInput struct {
	TankSizeGallons    float64
	Heater             bool
	Filter             bool
	TemperatureCelsius float64
	PH                 float64
	Ammonia            float64
	Nitrite            float64
	Nitrate            float64
	Fish               models.Fish
}

// BettaScore applies the onboarding penalty table.
func BettaScore(in BettaScoreInput) int {
	score := MaxScore

	if in.TankSizeGallons < models.MinHealthyTankGallons {
		score -= 20
	}
	if !in.Heater {
		score -= 10
	}
	if !in.Filter {
		score -= 10
	}
	if outside(in.TemperatureCelsius, LegacyTempMinC, LegacyTempMaxC) {
		score -= 10
	}
	if outside(in.PH, IdealPHMin, IdealPHMax) {
		score -= 5
	}
	if in.Ammonia > 0 {
		score -= 20
	}
	if in.Nitrite > 0 {
		score -= 10
	}
	if in.Nitrate > NitrateWarn {
		score -= 5
	}

	healthy := []struct{ value, want string }{
		{in.Fish.Appetite, models.AppetiteNormal},
		{in.Fish.Activity, models.ActivityNormal},
		{in.Fish.FinCondition, models.FinHealthy},
		{in.Fish.ColorCondition, models.ColorVibrant},
		{in.Fish.GillCondition, models.GillNormal},
		{in.Fish.BodyCondition, models.BodyNormal},
		{in.Fish.Behavior, models.BehaviorNormal},
	}
	for _, h := range healthy {
		if h.value != h.want {
			score -= 5
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// Snapshot is the current tank, fish and water a strategy scores.
type Snapshot struct {
	Tank  models.Tank         `json:"tank"`
	Fish  models.Fish         `json:"fish"`
	Water models.WaterReading `json:"water"`
}

// Strategy is a named scoring table.
type Strategy interface {
	Name() string
	Score(s Snapshot) int
}

// HealthScoreStrategy scores with the Fahrenheit health table.
type HealthScoreStrategy struct{}

func (HealthScoreStrategy) Name() string { return "health" }

func (HealthScoreStrategy) Score(s Snapshot) int {
	return ComputeHealthScore(s.Fish, s.Water)
}

// BettaScoreStrategy scores with the onboarding table, converting the stored
// Fahrenheit reading to Celsius first.
type BettaScoreStrategy struct{}

func (BettaScoreStrategy) Name() string { return "betta" }

func (BettaScoreStrategy) Score(s Snapshot) int {
	return BettaScore(BettaScoreInput{
		TankSizeGallons:    s.Tank.SizeGallons,
		Heater:             s.Tank.Heater,
		Filter:             s.Tank.Filter,
		TemperatureCelsius: models.FahrenheitToCelsius(s.Water.Temperature),
		PH:                 s.Water.PH,
		Ammonia:            s.Water.Ammonia,
		Nitrite:            s.Water.Nitrite,
		Nitrate:            s.Water.Nitrate,
		Fish:               s.Fish,
	})
}

// Strategies lists the available strategies by name.
var Strategies = map[string]Strategy{
	HealthScoreStrategy{}.Name(): HealthScoreStrategy{},
	BettaScoreStrategy{}.Name():  BettaScoreStrategy{},
}

// StrategyByName returns the named strategy, or false when unknown.
func StrategyByName(name string) (Strategy, bool) {
	s, ok := Strategies[name]
	return s, ok
}
