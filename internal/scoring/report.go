// ABOUTME: Report bundles every derived value for one snapshot.
// ABOUTME: Reports are recomputed on each read and never stored.
package scoring

import (
	"github.com/harperreed/betta/internal/models"
)

// Report is the full derived view of a snapshot.
type Report struct {
	Score          int            `json:"score"`
	Classification Classification `json:"classification"`
	Alerts         []HealthAlert  `json:"alerts"`
	Findings       []Finding      `json:"findings"`
	Symptoms       []Symptom      `json:"symptoms"`
}

// Evaluate computes score, classification, alerts and findings.
func Evaluate(tank models.Tank, fish models.Fish, water models.WaterReading) Report {
	score := ComputeHealthScore(fish, water)
	return Report{
		Score:          score,
		Classification: ClassifyScore(score),
		Alerts:         DeriveAlerts(tank, fish, water),
		Findings:       Analyze(tank, fish, water),
		Symptoms:       ActiveSymptoms(fish),
	}
}
