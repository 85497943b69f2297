// ABOUTME: Tests for the composite health score and tier classification.
// ABOUTME: Covers the penalty table, clamping and monotonic behavior.
package scoring

import (
	"testing"

	"github.com/harperreed/betta/internal/models"
)

func nominalWater() models.WaterReading {
	return models.DefaultWaterReading()
}

func TestComputeHealthScoreNominal(t *testing.T) {
	got := ComputeHealthScore(models.DefaultFish(), nominalWater())
	if got != MaxScore {
		t.Errorf("ComputeHealthScore(nominal) = %d, want %d", got, MaxScore)
	}
}

func TestComputeHealthScorePenalties(t *testing.T) {
	tests := []struct {
		name  string
		fish  func(f *models.Fish)
		water func(w *models.WaterReading)
		want  int
	}{
		{"warm", nil, func(w *models.WaterReading) { w.Temperature = 83 }, 90},
		{"hot", nil, func(w *models.WaterReading) { w.Temperature = 90 }, 60},
		{"cold", nil, func(w *models.WaterReading) { w.Temperature = 65 }, 60},
		{"slightly acidic", nil, func(w *models.WaterReading) { w.PH = 6.2 }, 95},
		{"very acidic", nil, func(w *models.WaterReading) { w.PH = 5.5 }, 75},
		{"ammonia", nil, func(w *models.WaterReading) { w.Ammonia = 0.25 }, 60},
		{"nitrite", nil, func(w *models.WaterReading) { w.Nitrite = 0.25 }, 65},
		{"nitrate warn", nil, func(w *models.WaterReading) { w.Nitrate = 30 }, 90},
		{"nitrate critical", nil, func(w *models.WaterReading) { w.Nitrate = 50 }, 65},
		{"nitrate boundary", nil, func(w *models.WaterReading) { w.Nitrate = 20 }, 100},
		{"not eating", func(f *models.Fish) { f.Appetite = models.AppetiteNotEating }, nil, 70},
		{"eating less", func(f *models.Fish) { f.Appetite = models.AppetiteEatingLess }, nil, 90},
		{"lying at bottom", func(f *models.Fish) { f.Activity = models.ActivityLyingAtBottom }, nil, 75},
		{"minor fin damage", func(f *models.Fish) { f.FinCondition = models.FinMinorDamage }, nil, 95},
		{"rotting fins", func(f *models.Fish) { f.FinCondition = models.FinRotting }, nil, 80},
		{"spots", func(f *models.Fish) { f.ColorCondition = models.ColorSpots }, nil, 85},
		{"gasping", func(f *models.Fish) { f.GillCondition = models.GillGasping }, nil, 75},
		{"bloated", func(f *models.Fish) { f.BodyCondition = models.BodyBloated }, nil, 80},
		{"behavior not scored", func(f *models.Fish) { f.Behavior = models.BehaviorFlashing }, nil, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fish := models.DefaultFish()
			water := nominalWater()
			if tt.fish != nil {
				tt.fish(&fish)
			}
			if tt.water != nil {
				tt.water(&water)
			}
			if got := ComputeHealthScore(fish, water); got != tt.want {
				t.Errorf("ComputeHealthScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeHealthScoreClampsAtZero(t *testing.T) {
	fish := models.Fish{
		Appetite:       models.AppetiteNotEating,
		Activity:       models.ActivityLethargic,
		FinCondition:   models.FinRotting,
		ColorCondition: models.ColorSpots,
		GillCondition:  models.GillGasping,
		BodyCondition:  models.BodyInjured,
	}
	water := models.WaterReading{Temperature: 95, PH: 9, Ammonia: 2, Nitrite: 1, Nitrate: 80}

	if got := ComputeHealthScore(fish, water); got != 0 {
		t.Errorf("ComputeHealthScore(worst) = %d, want 0", got)
	}
}

func TestComputeHealthScoreMonotonic(t *testing.T) {
	metrics := []struct {
		name  string
		set   func(w *models.WaterReading, v float64)
		steps []float64
	}{
		{"temperature rising", func(w *models.WaterReading, v float64) { w.Temperature = v }, []float64{78, 80, 82, 83, 85, 86, 95, 120}},
		{"temperature falling", func(w *models.WaterReading, v float64) { w.Temperature = v }, []float64{78, 75, 74, 70, 69, 50, 32}},
		{"ph rising", func(w *models.WaterReading, v float64) { w.PH = v }, []float64{7, 7.5, 7.6, 8, 8.1, 14}},
		{"ph falling", func(w *models.WaterReading, v float64) { w.PH = v }, []float64{7, 6.5, 6.4, 6, 5.9, 0}},
		{"ammonia", func(w *models.WaterReading, v float64) { w.Ammonia = v }, []float64{0, 0.25, 1, 8}},
		{"nitrite", func(w *models.WaterReading, v float64) { w.Nitrite = v }, []float64{0, 0.25, 1, 8}},
		{"nitrate", func(w *models.WaterReading, v float64) { w.Nitrate = v }, []float64{0, 20, 21, 40, 41, 200}},
	}

	for _, m := range metrics {
		t.Run(m.name, func(t *testing.T) {
			prev := MaxScore + 1
			for _, v := range m.steps {
				water := nominalWater()
				m.set(&water, v)
				got := ComputeHealthScore(models.DefaultFish(), water)
				if got > prev {
					t.Errorf("score rose from %d to %d at %v", prev, got, v)
				}
				if got < 0 || got > MaxScore {
					t.Errorf("score %d out of [0,%d]", got, MaxScore)
				}
				prev = got
			}
		})
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{100, LevelExcellent},
		{90, LevelExcellent},
		{89, LevelGood},
		{75, LevelGood},
		{74, LevelFair},
		{60, LevelFair},
		{59, LevelPoor},
		{40, LevelPoor},
		{39, LevelCritical},
		{0, LevelCritical},
	}

	for _, tt := range tests {
		got := ClassifyScore(tt.score)
		if got.Level != tt.want {
			t.Errorf("ClassifyScore(%d) = %s, want %s", tt.score, got.Level, tt.want)
		}
		if got.Description == "" {
			t.Errorf("ClassifyScore(%d) has empty description", tt.score)
		}
	}
}
