package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/partnerscore/core"
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// scoreValueResult is the response of the score_value tool.
type scoreValueResult struct {
	Metric string       `json:"metric"`
	Value  string       `json:"value"`
	Score  schema.Score `json:"score"`
	Scored bool         `json:"scored"`
}

// partnerView is the response of the get_partner tool.
type partnerView struct {
	Partner   schema.RawPartner   `json:"partner"`
	Scorecard *schema.EnrichedRow `json:"scorecard,omitempty"`
}

func (h *toolHandler) store() (contract.Store, error) {
	if h.mgr == nil {
		return nil, contract.ErrStoreUnavailable
	}
	store := h.mgr.GetStore()
	if store == nil {
		return nil, contract.ErrStoreUnavailable
	}
	return store, nil
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListScores(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := h.baseCfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}

	rows, err := core.TopScores(store, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing scores failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichRows(rows))
}

func (h *toolHandler) handleGetPartner(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError(contract.ErrEmptyPartnerName.Error()), nil
	}
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	partner, err := store.GetPartner(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	view := partnerView{Partner: partner}
	rows, err := store.ListScoredRows()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing scores failed: %v", err)), nil
	}
	for _, r := range rows {
		if schema.NameKey(r.Name) == schema.NameKey(name) {
			view.Scorecard = &schema.EnrichedRow{Label: schema.GetPlainLabel(r.Percentage), ScoredRow: r}
			break
		}
	}
	return jsonResult(view)
}

func (h *toolHandler) handleClassifyPartners(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	quadrants := h.baseCfg.Quadrants
	if len(quadrants) == 0 {
		quadrants = schema.DefaultQuadrants()
	}

	assignments, err := core.ClassifyPartners(store, quadrants)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}
	return jsonResult(assignments)
}

func (h *toolHandler) handleListCriteria(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	criteria, err := core.LoadCriteria(store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading criteria failed: %v", err)), nil
	}

	if request.GetBool("enabled_only", false) {
		enabled := make(schema.Criteria)
		for _, key := range criteria.EnabledKeys() {
			enabled[key] = criteria[key]
		}
		criteria = enabled
	}
	return jsonResult(criteria)
}

func (h *toolHandler) handlePreviewBenchmark(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := core.ApplyBenchmark(store, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("benchmark failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleScoreValue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	label := request.GetString("metric", "")
	key, ok := schema.ResolveMetricKey(label)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%v: %q", contract.ErrUnknownMetric, label)), nil
	}
	store, err := h.store()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	criteria, err := core.LoadCriteria(store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading criteria failed: %v", err)), nil
	}

	value := request.GetString("value", "")
	score, scored := core.ScoreMetric(key, value, criteria)
	return jsonResult(scoreValueResult{Metric: key, Value: value, Score: score, Scored: scored})
}
