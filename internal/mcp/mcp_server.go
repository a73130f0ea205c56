// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the partnerscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Partner Scorecard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_scores ---
	s.AddTool(mcp.NewTool("list_scores",
		mcp.WithDescription("List partner scorecards ranked by percentage, then total score."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of partners returned.")),
	), h.handleListScores)

	// --- 2. Tool: get_partner ---
	s.AddTool(mcp.NewTool("get_partner",
		mcp.WithDescription("Show one partner's raw values next to its current scorecard."),
		mcp.WithString("name", mcp.Description("Partner name (case-insensitive)."), mcp.Required()),
	), h.handleGetPartner)

	// --- 3. Tool: classify_partners ---
	s.AddTool(mcp.NewTool("classify_partners",
		mcp.WithDescription("Assign every scored partner to a classification quadrant."),
	), h.handleClassifyPartners)

	// --- 4. Tool: list_criteria ---
	s.AddTool(mcp.NewTool("list_criteria",
		mcp.WithDescription("List the active scoring rubric with ranges or descriptors per metric."),
		mcp.WithBoolean("enabled_only", mcp.Description("Only include enabled metrics.")),
	), h.handleListCriteria)

	// --- 5. Tool: preview_benchmark ---
	s.AddTool(mcp.NewTool("preview_benchmark",
		mcp.WithDescription("Compute quintile ranges from the current partner data without saving them."),
	), h.handlePreviewBenchmark)

	// --- 6. Tool: score_value ---
	s.AddTool(mcp.NewTool("score_value",
		mcp.WithDescription("Score a single raw value for a metric under the active rubric."),
		mcp.WithString("metric", mcp.Description("Metric key, display name or alias (e.g. 'revenue', 'Win Rate')."), mcp.Required()),
		mcp.WithString("value", mcp.Description("Raw display value such as '$120,000', '15%' or a descriptor."), mcp.Required()),
	), h.handleScoreValue)

	return s
}

// StartMCPServer starts the partnerscore MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
