// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Cadence MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Cadence Meeting Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_team_insights ---
	s.AddTool(mcp.NewTool("get_team_insights",
		mcp.WithDescription("Compute the team insights snapshot over stored meetings, contacts and tasks."),
		mcp.WithNumber("window_weeks", mcp.Description("Trailing window in whole weeks for weekly counts and trend. Defaults to the configured window.")),
		mcp.WithNumber("cadence_days", mcp.Description("Default meeting cadence in days for contacts without one of their own.")),
	), h.handleGetTeamInsights)

	// --- 2. Tool: get_needs_attention ---
	s.AddTool(mcp.NewTool("get_needs_attention",
		mcp.WithDescription("List contacts whose last meeting is older than their cadence, or who have never been met."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of contacts returned.")),
		mcp.WithNumber("cadence_days", mcp.Description("Default meeting cadence in days for contacts without one of their own.")),
	), h.handleGetNeedsAttention)

	// --- 3. Tool: preview_import ---
	s.AddTool(mcp.NewTool("preview_import",
		mcp.WithDescription("Run a calendar import in dry-run mode and report what would be imported, skipped and failed."),
		mcp.WithString("path", mcp.Description("Path to the calendar export file or directory."), mcp.Required()),
		mcp.WithString("source", mcp.Description("Calendar export flavor (auto, graph, gcal, ics). Defaults to 'auto'."), mcp.Enum("auto", "graph", "gcal", "ics")),
	), h.handlePreviewImport)

	return s
}

// StartMCPServer starts the Cadence MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.StoreManager) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
