// ABOUTME: MCP resource implementations for betta care data.
// ABOUTME: Provides betta://status, betta://history and betta://reminders.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/betta/internal/models"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "betta://status",
		Name:        "Betta Status",
		Description: "Current tank, fish and water with score, alerts and likely causes",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "betta://history",
		Name:        "Care History",
		Description: "Recent water tests, feedings, water changes and fish observations",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "betta://reminders",
		Name:        "Care Reminders",
		Description: "Reminders, overdue tasks and today's feedings",
		MIMEType:    "application/json",
	}, s.handleRemindersResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleStatusResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return jsonResource("betta://status", s.status())
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := models.DisplayHistoryLimit
	water, err := s.tracker.WaterHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list water readings: %w", err)
	}
	feedings, err := s.tracker.FeedingHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedings: %w", err)
	}
	changes, err := s.tracker.WaterChangeHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list water changes: %w", err)
	}
	fish, err := s.tracker.FishHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list fish: %w", err)
	}

	return jsonResource("betta://history", map[string]any{
		"water_readings": water,
		"feeding_logs":   feedings,
		"water_changes":  changes,
		"fish":           fish,
	})
}

func (s *Server) handleRemindersResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.tracker.Reminders()
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	overdue, err := s.tracker.OverdueReminders()
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	today, err := s.tracker.TodaysFeedings()
	if err != nil {
		return nil, fmt.Errorf("failed to load feeding schedule: %w", err)
	}

	return jsonResource("betta://reminders", map[string]any{
		"reminders":       reminders,
		"overdue":         overdue,
		"todays_feedings": today,
	})
}
