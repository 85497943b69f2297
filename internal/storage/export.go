// ABOUTME: Export and import of care data.
// ABOUTME: Supports JSON, YAML, CSV (water readings) and Markdown formats.
package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/scoring"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// ExportData is the full snapshot plus bounded histories.
type ExportData struct {
	Version         string                        `json:"version" yaml:"version"`
	ExportedAt      time.Time                     `json:"exported_at" yaml:"exported_at"`
	Tool            string                        `json:"tool" yaml:"tool"`
	OwnerID         string                        `json:"owner_id" yaml:"owner_id"`
	Tank            *models.Tank                  `json:"tank,omitempty" yaml:"tank,omitempty"`
	Fish            *models.Fish                  `json:"fish,omitempty" yaml:"fish,omitempty"`
	Water           *models.WaterReading          `json:"water,omitempty" yaml:"water,omitempty"`
	Tanks           []*models.Tank                `json:"tanks" yaml:"tanks"`
	FishHistory     []*models.Fish                `json:"fish_history" yaml:"fish_history"`
	WaterReadings   []*models.WaterReading        `json:"water_readings" yaml:"water_readings"`
	FeedingLogs     []*models.FeedingLog          `json:"feeding_logs" yaml:"feeding_logs"`
	WaterChanges    []*models.WaterChange         `json:"water_changes" yaml:"water_changes"`
	Reminders       []models.CareReminder         `json:"reminders,omitempty" yaml:"reminders,omitempty"`
	FeedingSchedule []models.FeedingScheduleEntry `json:"feeding_schedule,omitempty" yaml:"feeding_schedule,omitempty"`
}

// BuildExport reads the owner's current records and up to limit history
// entries per collection. A limit of zero or less exports everything.
func BuildExport(ctx context.Context, repo Repository, ownerID string, limit int) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "betta",
		OwnerID:    ownerID,
	}

	var err error
	if data.Tanks, err = repo.ListTanks(ctx, ownerID, limit); err != nil {
		return nil, fmt.Errorf("list tanks: %w", err)
	}
	if data.FishHistory, err = repo.ListFish(ctx, ownerID, limit); err != nil {
		return nil, fmt.Errorf("list fish: %w", err)
	}
	if data.WaterReadings, err = repo.ListWaterReadings(ctx, ownerID, limit); err != nil {
		return nil, fmt.Errorf("list water readings: %w", err)
	}
	if data.FeedingLogs, err = repo.ListFeedingLogs(ctx, ownerID, limit); err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}
	if data.WaterChanges, err = repo.ListWaterChanges(ctx, ownerID, limit); err != nil {
		return nil, fmt.Errorf("list water changes: %w", err)
	}

	if len(data.Tanks) > 0 {
		data.Tank = data.Tanks[0]
	}
	if len(data.FishHistory) > 0 {
		data.Fish = data.FishHistory[0]
	}
	if len(data.WaterReadings) > 0 {
		data.Water = data.WaterReadings[0]
	}
	return data, nil
}

// ExportJSON renders data as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML renders data as YAML.
func ExportYAML(data *ExportData) ([]byte, error) {
	yamlData := struct {
		Version       string         `yaml:"version"`
		ExportedAt    string         `yaml:"exported_at"`
		Tool          string         `yaml:"tool"`
		Tank          *yamlTank      `yaml:"tank,omitempty"`
		Fish          *yamlFish      `yaml:"fish,omitempty"`
		WaterReadings []yamlWater    `yaml:"water_readings"`
		FeedingLogs   []yamlFeeding  `yaml:"feeding_logs"`
		WaterChanges  []yamlChange   `yaml:"water_changes"`
		Reminders     []yamlReminder `yaml:"reminders,omitempty"`
	}{
		Version:       data.Version,
		ExportedAt:    data.ExportedAt.Format(time.RFC3339),
		Tool:          data.Tool,
		WaterReadings: make([]yamlWater, 0, len(data.WaterReadings)),
		FeedingLogs:   make([]yamlFeeding, 0, len(data.FeedingLogs)),
		WaterChanges:  make([]yamlChange, 0, len(data.WaterChanges)),
	}

	if t := data.Tank; t != nil {
		yamlData.Tank = &yamlTank{SizeGallons: t.SizeGallons, Heater: t.Heater, Filter: t.Filter}
	}
	if f := data.Fish; f != nil {
		yamlData.Fish = &yamlFish{
			Name:           f.Name,
			Color:          f.Color,
			Appetite:       f.Appetite,
			Activity:       f.Activity,
			FinCondition:   f.FinCondition,
			ColorCondition: f.ColorCondition,
			GillCondition:  f.GillCondition,
			BodyCondition:  f.BodyCondition,
			Behavior:       f.Behavior,
		}
	}
	for _, w := range data.WaterReadings {
		yamlData.WaterReadings = append(yamlData.WaterReadings, yamlWater{
			ID:          shortID(w.ID.String()),
			Temperature: w.Temperature,
			PH:          w.PH,
			Ammonia:     w.Ammonia,
			Nitrite:     w.Nitrite,
			Nitrate:     w.Nitrate,
			RecordedAt:  w.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, f := range data.FeedingLogs {
		yamlData.FeedingLogs = append(yamlData.FeedingLogs, yamlFeeding{
			ID:       shortID(f.ID.String()),
			FoodType: f.FoodType,
			Amount:   f.Amount,
			Notes:    deref(f.Notes),
			FedAt:    f.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, c := range data.WaterChanges {
		yamlData.WaterChanges = append(yamlData.WaterChanges, yamlChange{
			ID:         shortID(c.ID.String()),
			Percentage: c.Percentage,
			Notes:      deref(c.Notes),
			ChangedAt:  c.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, r := range data.Reminders {
		yamlData.Reminders = append(yamlData.Reminders, yamlReminder{
			Title:     r.Title,
			Frequency: string(r.Frequency),
			Priority:  string(r.Priority),
			NextDue:   r.NextDue.Format(time.RFC3339),
			Enabled:   r.Enabled,
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlTank struct {
	SizeGallons float64 `yaml:"size_gallons"`
	Heater      bool    `yaml:"heater"`
	Filter      bool    `yaml:"filter"`
}

type yamlFish struct {
	Name           string `yaml:"name"`
	Color          string `yaml:"color"`
	Appetite       string `yaml:"appetite"`
	Activity       string `yaml:"activity"`
	FinCondition   string `yaml:"fin_condition"`
	ColorCondition string `yaml:"color_condition"`
	GillCondition  string `yaml:"gill_condition"`
	BodyCondition  string `yaml:"body_condition"`
	Behavior       string `yaml:"behavior"`
}

type yamlWater struct {
	ID          string  `yaml:"id"`
	Temperature float64 `yaml:"temperature_f"`
	PH          float64 `yaml:"ph"`
	Ammonia     float64 `yaml:"ammonia_ppm"`
	Nitrite     float64 `yaml:"nitrite_ppm"`
	Nitrate     float64 `yaml:"nitrate_ppm"`
	RecordedAt  string  `yaml:"recorded_at"`
}

type yamlFeeding struct {
	ID       string `yaml:"id"`
	FoodType string `yaml:"food_type"`
	Amount   string `yaml:"amount"`
	Notes    string `yaml:"notes,omitempty"`
	FedAt    string `yaml:"fed_at"`
}

type yamlChange struct {
	ID         string  `yaml:"id"`
	Percentage float64 `yaml:"percentage"`
	Notes      string  `yaml:"notes,omitempty"`
	ChangedAt  string  `yaml:"changed_at"`
}

type yamlReminder struct {
	Title     string `yaml:"title"`
	Frequency string `yaml:"frequency"`
	Priority  string `yaml:"priority"`
	NextDue   string `yaml:"next_due"`
	Enabled   bool   `yaml:"enabled"`
}

// csvHeader is the water reading CSV column order.
var csvHeader = []string{"date", "temperature_f", "ph", "ammonia_ppm", "nitrite_ppm", "nitrate_ppm"}

// ExportCSV renders water readings as CSV, one row per reading.
func ExportCSV(readings []*models.WaterReading) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range readings {
		record := []string{
			r.CreatedAt.Format(time.RFC3339),
			formatFloat(r.Temperature),
			formatFloat(r.PH),
			formatFloat(r.Ammonia),
			formatFloat(r.Nitrite),
			formatFloat(r.Nitrate),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportMarkdown renders a readable care report.
func ExportMarkdown(data *ExportData) string {
	var sb strings.Builder

	tank := models.DefaultTank()
	if data.Tank != nil {
		tank = *data.Tank
	}
	fish := models.DefaultFish()
	if data.Fish != nil {
		fish = *data.Fish
	}
	water := models.DefaultWaterReading()
	if data.Water != nil {
		water = *data.Water
	}
	report := scoring.Evaluate(tank, fish, water)

	sb.WriteString(fmt.Sprintf("# Betta Care Export - %s\n\n", data.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	sb.WriteString(fmt.Sprintf("## %s\n\n", fish.Name))
	sb.WriteString(fmt.Sprintf("Health score: **%d** (%s)\n\n", report.Score, report.Classification.Level))
	sb.WriteString(fmt.Sprintf("- Tank: %s gal, heater %s, filter %s\n", formatFloat(tank.SizeGallons), yesNo(tank.Heater), yesNo(tank.Filter)))
	sb.WriteString(fmt.Sprintf("- Appetite: %s\n- Activity: %s\n- Fins: %s\n- Color: %s\n- Gills: %s\n- Body: %s\n- Behavior: %s\n\n",
		fish.Appetite, fish.Activity, fish.FinCondition, fish.ColorCondition, fish.GillCondition, fish.BodyCondition, fish.Behavior))

	if len(report.Alerts) > 0 {
		sb.WriteString("## Alerts\n\n")
		for _, a := range report.Alerts {
			sb.WriteString(fmt.Sprintf("- **%s** [%s] %s %s\n", a.Title, a.Type, a.Message, a.Recommendation))
		}
		sb.WriteString("\n")
	}

	if len(data.WaterReadings) > 0 {
		sb.WriteString("## Water Readings\n\n")
		sb.WriteString("| Date | Temp °F | pH | Ammonia | Nitrite | Nitrate |\n")
		sb.WriteString("|------|---------|----|---------|---------|---------|\n")
		for _, w := range data.WaterReadings {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				w.CreatedAt.Format("2006-01-02 15:04"),
				formatFloat(w.Temperature), formatFloat(w.PH),
				formatFloat(w.Ammonia), formatFloat(w.Nitrite), formatFloat(w.Nitrate)))
		}
		sb.WriteString("\n")
	}

	if len(data.FeedingLogs) > 0 {
		sb.WriteString("## Feedings\n\n")
		sb.WriteString("| Date | Food | Amount | Notes |\n")
		sb.WriteString("|------|------|--------|-------|\n")
		for _, f := range data.FeedingLogs {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				f.CreatedAt.Format("2006-01-02 15:04"), f.FoodType, f.Amount, deref(f.Notes)))
		}
		sb.WriteString("\n")
	}

	if len(data.WaterChanges) > 0 {
		sb.WriteString("## Water Changes\n\n")
		sb.WriteString("| Date | Percent | Notes |\n")
		sb.WriteString("|------|---------|-------|\n")
		for _, c := range data.WaterChanges {
			sb.WriteString(fmt.Sprintf("| %s | %s%% | %s |\n",
				c.CreatedAt.Format("2006-01-02 15:04"), formatFloat(c.Percentage), deref(c.Notes)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ParseExport decodes a JSON export document.
func ParseExport(raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if data.Version == "" {
		return nil, errors.New("unmarshal JSON: missing version")
	}
	return &data, nil
}

// ImportData appends every history record in data to repo under ownerID,
// oldest first so the newest record stays current.
func ImportData(ctx context.Context, repo Repository, data *ExportData, ownerID string) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for i := len(data.Tanks) - 1; i >= 0; i-- {
		t := *data.Tanks[i]
		t.OwnerID = ownerID
		if err := repo.CreateTank(ctx, &t); err != nil {
			return summary, fmt.Errorf("import tank: %w", err)
		}
		summary.Tanks++
	}
	for i := len(data.FishHistory) - 1; i >= 0; i-- {
		f := *data.FishHistory[i]
		f.OwnerID = ownerID
		if err := repo.CreateFish(ctx, &f); err != nil {
			return summary, fmt.Errorf("import fish: %w", err)
		}
		summary.Fish++
	}
	for i := len(data.WaterReadings) - 1; i >= 0; i-- {
		w := *data.WaterReadings[i]
		w.OwnerID = ownerID
		if err := repo.CreateWaterReading(ctx, &w); err != nil {
			return summary, fmt.Errorf("import water reading: %w", err)
		}
		summary.WaterReadings++
	}
	for i := len(data.FeedingLogs) - 1; i >= 0; i-- {
		f := *data.FeedingLogs[i]
		f.OwnerID = ownerID
		if err := repo.CreateFeedingLog(ctx, &f); err != nil {
			return summary, fmt.Errorf("import feeding log: %w", err)
		}
		summary.FeedingLogs++
	}
	for i := len(data.WaterChanges) - 1; i >= 0; i-- {
		c := *data.WaterChanges[i]
		c.OwnerID = ownerID
		if err := repo.CreateWaterChange(ctx, &c); err != nil {
			return summary, fmt.Errorf("import water change: %w", err)
		}
		summary.WaterChanges++
	}

	return summary, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
