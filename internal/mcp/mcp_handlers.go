package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cadencehq/cadence/core"
	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/internal/feed"
	"github.com/cadencehq/cadence/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.StoreManager
}

// buildSnapshot gathers the source collections from the store and computes
// the insights snapshot.
func (h *toolHandler) buildSnapshot(ctx context.Context, cfg *contract.Config) (*schema.TeamInsightsSnapshot, error) {
	contacts, err := h.store.Contacts().ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}
	meetings, err := h.store.Meetings().ListMeetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading meetings: %w", err)
	}
	tasks, err := h.store.Tasks().ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	return core.BuildSnapshot(time.Now(), contacts, meetings, tasks, cfg.WindowWeeks, cfg.CadenceDays), nil
}

func (h *toolHandler) handleGetTeamInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if w := request.GetInt("window_weeks", 0); w > 0 {
		if w < contract.MinWindowWeeks || w > contract.MaxWindowWeeks {
			return mcp.NewToolResultError(fmt.Sprintf("window_weeks must be between %d and %d", contract.MinWindowWeeks, contract.MaxWindowWeeks)), nil
		}
		cfg.WindowWeeks = w
	}
	if c := request.GetInt("cadence_days", 0); c > 0 {
		cfg.CadenceDays = c
	}

	snap, err := h.buildSnapshot(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insights failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snap, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetNeedsAttention(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if c := request.GetInt("cadence_days", 0); c > 0 {
		cfg.CadenceDays = c
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	snap, err := h.buildSnapshot(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insights failed: %v", err)), nil
	}

	entries := snap.NeedsAttention
	if cfg.ResultLimit > 0 && len(entries) > cfg.ResultLimit {
		entries = entries[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePreviewImport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DryRun = true

	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	cfg.InputPath = path

	if s := request.GetString("source", ""); s != "" {
		kind := schema.SourceKind(strings.ToLower(s))
		if _, ok := schema.ValidSourceKinds[kind]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid source '%s'. must be auto, graph, gcal, ics", s)), nil
		}
		cfg.Source = kind
	}
	if cfg.Source == "" {
		cfg.Source = schema.AutoSource
	}

	eventFeed, err := feed.Open(cfg.Source, cfg.InputPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open input: %v", err)), nil
	}

	importer := core.NewImporter(cfg, eventFeed, h.store.Meetings(), h.store.Contacts())
	outcome, err := importer.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("preview failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(outcome, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
