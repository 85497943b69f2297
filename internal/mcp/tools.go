// ABOUTME: MCP tool implementations for betta care tracking.
// ABOUTME: Update tools apply only the fields given over the current record.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/scoring"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_tank",
		Description: "Save the tank setup (size in gallons, heater, filter)",
	}, s.handleUpdateTank)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_fish",
		Description: "Record a fish health observation; omitted fields keep their current value",
	}, s.handleUpdateFish)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_water_reading",
		Description: "Record a water test (temperature in °F, pH, ammonia, nitrite, nitrate in ppm)",
	}, s.handleLogWaterReading)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_feeding",
		Description: "Record a feeding",
	}, s.handleLogFeeding)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_water_change",
		Description: "Record a partial water change",
	}, s.handleLogWaterChange)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_status",
		Description: "Get the wellness score, health level, alerts and likely causes",
	}, s.handleGetStatus)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_water_readings",
		Description: "List recent water tests, newest first",
	}, s.handleListWaterReadings)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_reminders",
		Description: "List care reminders with overdue ones first",
	}, s.handleListReminders)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_reminder",
		Description: "Mark a care reminder done by ID or ID prefix",
	}, s.handleCompleteReminder)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "todays_feedings",
		Description: "List the feedings scheduled for today",
	}, s.handleTodaysFeedings)
}

// Tool input/output types

type updateTankInput struct {
	SizeGallons *float64 `json:"size_gallons,omitempty" jsonschema:"Tank size in gallons"`
	Heater      *bool    `json:"heater,omitempty" jsonschema:"Whether the tank has a heater"`
	Filter      *bool    `json:"filter,omitempty" jsonschema:"Whether the tank has a filter"`
}

type updateFishInput struct {
	Name           string `json:"name,omitempty" jsonschema:"Fish name"`
	Color          string `json:"color,omitempty" jsonschema:"Fish color"`
	Appetite       string `json:"appetite,omitempty" jsonschema:"Normal, Eating less or Not eating at all"`
	Activity       string `json:"activity,omitempty" jsonschema:"Normal, Less active, Lethargic or Lying at bottom"`
	FinCondition   string `json:"fin_condition,omitempty" jsonschema:"Healthy, Minor damage, Damaged or Rotting"`
	ColorCondition string `json:"color_condition,omitempty" jsonschema:"Vibrant, Fading or Spots/patches"`
	GillCondition  string `json:"gill_condition,omitempty" jsonschema:"Normal, Rapid breathing or Gasping"`
	BodyCondition  string `json:"body_condition,omitempty" jsonschema:"Normal, Thin, Bloated or Injured"`
	Behavior       string `json:"behavior,omitempty" jsonschema:"Normal, Hiding, Glass surfing, Flashing or Clamped fins"`
}

type logWaterInput struct {
	Temperature *float64 `json:"temperature,omitempty" jsonschema:"Water temperature in °F"`
	PH          *float64 `json:"ph,omitempty" jsonschema:"pH"`
	Ammonia     *float64 `json:"ammonia,omitempty" jsonschema:"Ammonia in ppm"`
	Nitrite     *float64 `json:"nitrite,omitempty" jsonschema:"Nitrite in ppm"`
	Nitrate     *float64 `json:"nitrate,omitempty" jsonschema:"Nitrate in ppm"`
}

type logFeedingInput struct {
	FoodType string `json:"food_type" jsonschema:"Food given, e.g. Pellets or Bloodworms"`
	Amount   string `json:"amount" jsonschema:"How much, e.g. 3 pellets"`
	Notes    string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logWaterChangeInput struct {
	Percentage float64 `json:"percentage" jsonschema:"Percent of the water replaced"`
	Notes      string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type completeReminderInput struct {
	ID string `json:"id" jsonschema:"Reminder ID or prefix"`
}

type emptyInput struct{}

type simpleOutput struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// Tool handlers

func (s *Server) handleUpdateTank(ctx context.Context, req *mcp.CallToolRequest, input updateTankInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.tracker.Snapshot().Tank
	tank := models.NewTank(cur.SizeGallons, cur.Heater, cur.Filter)
	if input.SizeGallons != nil {
		tank.SizeGallons = *input.SizeGallons
	}
	if input.Heater != nil {
		tank.Heater = *input.Heater
	}
	if input.Filter != nil {
		tank.Filter = *input.Filter
	}

	if err := s.tracker.SaveTank(ctx, tank); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save tank: %w", err)
	}
	return nil, simpleOutput{
		ID:      shortID(tank.ID),
		Message: fmt.Sprintf("Saved %g gallon tank (heater: %t, filter: %t)", tank.SizeGallons, tank.Heater, tank.Filter),
	}, nil
}

func (s *Server) handleUpdateFish(ctx context.Context, req *mcp.CallToolRequest, input updateFishInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fish := s.tracker.Snapshot().Fish
	fish.ID, fish.CreatedAt = uuid.Nil, time.Time{}
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&fish.Name, input.Name},
		{&fish.Color, input.Color},
		{&fish.Appetite, input.Appetite},
		{&fish.Activity, input.Activity},
		{&fish.FinCondition, input.FinCondition},
		{&fish.ColorCondition, input.ColorCondition},
		{&fish.GillCondition, input.GillCondition},
		{&fish.BodyCondition, input.BodyCondition},
		{&fish.Behavior, input.Behavior},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}

	if err := s.tracker.SaveFish(ctx, &fish); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save fish: %w", err)
	}
	return nil, simpleOutput{
		ID:      shortID(fish.ID),
		Message: fmt.Sprintf("Saved observation for %s (score now %d)", fish.Name, s.tracker.Report().Score),
	}, nil
}

func (s *Server) handleLogWaterReading(ctx context.Context, req *mcp.CallToolRequest, input logWaterInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.tracker.Snapshot().Water
	w := models.NewWaterReading(cur.Temperature, cur.PH, cur.Ammonia, cur.Nitrite, cur.Nitrate)
	for _, f := range []struct {
		dst *float64
		src *float64
	}{
		{&w.Temperature, input.Temperature},
		{&w.PH, input.PH},
		{&w.Ammonia, input.Ammonia},
		{&w.Nitrite, input.Nitrite},
		{&w.Nitrate, input.Nitrate},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if err := s.tracker.AddWaterReading(ctx, w); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save water reading: %w", err)
	}
	return nil, simpleOutput{
		ID:      shortID(w.ID),
		Message: fmt.Sprintf("Logged water: %g°F, pH %g, ammonia %g, nitrite %g, nitrate %g", w.Temperature, w.PH, w.Ammonia, w.Nitrite, w.Nitrate),
	}, nil
}

func (s *Server) handleLogFeeding(ctx context.Context, req *mcp.CallToolRequest, input logFeedingInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := models.NewFeedingLog(input.FoodType, input.Amount)
	if input.Notes != "" {
		f.WithNotes(input.Notes)
	}
	if err := s.tracker.LogFeeding(ctx, f); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log feeding: %w", err)
	}
	return nil, simpleOutput{
		ID:      shortID(f.ID),
		Message: fmt.Sprintf("Logged feeding: %s (%s)", f.FoodType, f.Amount),
	}, nil
}

func (s *Server) handleLogWaterChange(ctx context.Context, req *mcp.CallToolRequest, input logWaterChangeInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.NewWaterChange(input.Percentage)
	if input.Notes != "" {
		c.WithNotes(input.Notes)
	}
	if err := s.tracker.LogWaterChange(ctx, c); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log water change: %w", err)
	}
	return nil, simpleOutput{
		ID:      shortID(c.ID),
		Message: fmt.Sprintf("Logged %g%% water change", c.Percentage),
	}, nil
}

type statusOutput struct {
	Guest    bool             `json:"guest"`
	Snapshot scoring.Snapshot `json:"snapshot"`
	Report   scoring.Report   `json:"report"`
}

func (s *Server) status() statusOutput {
	return statusOutput{
		Guest:    s.tracker.IsGuest(),
		Snapshot: s.tracker.Snapshot(),
		Report:   s.tracker.Report(),
	}
}

func (s *Server) handleGetStatus(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.status(), nil
}

func (s *Server) handleListWaterReadings(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := s.tracker.WaterHistory(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list water readings: %w", err)
	}
	if len(readings) == 0 {
		return nil, map[string]any{"message": "No water readings found."}, nil
	}
	return nil, map[string]any{"water_readings": readings}, nil
}

func (s *Server) handleListReminders(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.tracker.Reminders()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	overdue, err := s.tracker.OverdueReminders()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return nil, map[string]any{"overdue": overdue, "reminders": reminders}, nil
}

func (s *Server) handleCompleteReminder(ctx context.Context, req *mcp.CallToolRequest, input completeReminderInput) (*mcp.CallToolResult, simpleOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.tracker.CompleteReminder(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to complete reminder: %w", err)
	}
	return nil, simpleOutput{
		ID:      r.ID,
		Message: fmt.Sprintf("Completed %q; next due %s", r.Title, r.NextDue.Format("Mon Jan 2")),
	}, nil
}

func (s *Server) handleTodaysFeedings(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feedings, err := s.tracker.TodaysFeedings()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load feeding schedule: %w", err)
	}
	if len(feedings) == 0 {
		return nil, map[string]any{"message": "No feedings scheduled today."}, nil
	}
	return nil, map[string]any{"feedings": feedings}, nil
}
