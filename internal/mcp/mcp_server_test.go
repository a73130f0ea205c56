package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/partnerscore/core"
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/iocache"
	mcp_internal "github.com/huangsam/partnerscore/internal/mcp"
	"github.com/huangsam/partnerscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededServer(t *testing.T) (*server.MCPServer, *iocache.MemoryStore) {
	t.Helper()
	store := iocache.NewMemoryStore()
	_, err := core.ImportPartners(store, []schema.RawPartner{
		schema.PartnerFromRecord(map[string]string{
			"partner_name":           "Acme",
			"raw_annual_revenues":    "$200,000",
			"raw_yoy_revenue_growth": "15%",
		}),
		schema.PartnerFromRecord(map[string]string{
			"partner_name":           "Globex",
			"raw_annual_revenues":    "$900,000",
			"raw_yoy_revenue_growth": "40%",
		}),
	})
	require.NoError(t, err)

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetStore").Return(store)
	cfg := &contract.Config{ResultLimit: contract.DefaultResultLimit}
	return mcp_internal.NewMCPServer(cfg, mgr), store
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "handlers report failures as tool errors")
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestListScores(t *testing.T) {
	s, _ := seededServer(t)

	res := callTool(t, s, "list_scores", map[string]any{"limit": 1.0})
	require.False(t, res.IsError)

	var rows []schema.EnrichedRow
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Globex", rows[0].Name)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, schema.TierExcellent, rows[0].Label)
}

func TestGetPartner(t *testing.T) {
	s, _ := seededServer(t)

	res := callTool(t, s, "get_partner", map[string]any{"name": " ACME "})
	require.False(t, res.IsError)
	var view struct {
		Partner   schema.RawPartner   `json:"partner"`
		Scorecard *schema.EnrichedRow `json:"scorecard"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &view))
	assert.Equal(t, "$200,000", view.Partner.RawValue("annual_revenues"))
	require.NotNil(t, view.Scorecard)
	assert.Equal(t, 60.0, view.Scorecard.Percentage)
	assert.Equal(t, schema.TierStrong, view.Scorecard.Label)

	res = callTool(t, s, "get_partner", map[string]any{"name": "Initech"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), contract.ErrPartnerNotFound.Error())

	res = callTool(t, s, "get_partner", map[string]any{"name": "  "})
	assert.True(t, res.IsError)
}

func TestClassifyPartners(t *testing.T) {
	s, _ := seededServer(t)

	res := callTool(t, s, "classify_partners", nil)
	require.False(t, res.IsError)

	var assignments []schema.QuadrantAssignment
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &assignments))
	byName := make(map[string]int)
	for _, a := range assignments {
		byName[a.PartnerName] = a.QuadrantID
	}
	assert.Equal(t, map[string]int{"Globex": 1, "Acme": schema.LongTailQuadrantID}, byName)
}

func TestListCriteria(t *testing.T) {
	s, store := seededServer(t)

	criteria, err := store.GetCriteria()
	require.NoError(t, err)
	c := criteria["win_rate"]
	c.Enabled = false
	criteria["win_rate"] = c
	require.NoError(t, store.PutCriteria(criteria))

	res := callTool(t, s, "list_criteria", map[string]any{"enabled_only": true})
	require.False(t, res.IsError)
	var listed schema.Criteria
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &listed))
	assert.Len(t, listed, len(schema.Catalog())-1)
	assert.NotContains(t, listed, "win_rate")

	res = callTool(t, s, "list_criteria", nil)
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &listed))
	assert.Len(t, listed, len(schema.Catalog()))
}

func TestPreviewBenchmark_DoesNotSave(t *testing.T) {
	s, store := seededServer(t)
	before, err := store.GetCriteria()
	require.NoError(t, err)

	res := callTool(t, s, "preview_benchmark", nil)
	require.False(t, res.IsError)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &result))
	assert.Equal(t, true, result["dry_run"])

	after, err := store.GetCriteria()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestScoreValue(t *testing.T) {
	s, _ := seededServer(t)

	tests := []struct {
		metric string
		value  string
		key    string
		score  schema.Score
		scored bool
	}{
		{"revenue", "$200,000", "annual_revenues", 3, true},
		{"Win Rate", "50%", "win_rate", 5, true},
		{"days_sales_outstanding", "20", "days_sales_outstanding", 5, true},
		{"market_coverage", "Global", "market_coverage", 5, true},
		{"technical_capability", "Select...", "technical_capability", schema.Unscored, false},
		{"gross_margin", "n/a", "gross_margin", schema.Unscored, false},
	}
	for _, tt := range tests {
		t.Run(tt.metric+"="+tt.value, func(t *testing.T) {
			res := callTool(t, s, "score_value", map[string]any{"metric": tt.metric, "value": tt.value})
			require.False(t, res.IsError)
			var got struct {
				Metric string       `json:"metric"`
				Score  schema.Score `json:"score"`
				Scored bool         `json:"scored"`
			}
			require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
			assert.Equal(t, tt.key, got.Metric)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.scored, got.Scored)
		})
	}

	res := callTool(t, s, "score_value", map[string]any{"metric": "favorite color", "value": "blue"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), contract.ErrUnknownMetric.Error())
}

func TestHandlers_NoStore(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)
	for _, name := range []string{"list_scores", "classify_partners", "list_criteria", "preview_benchmark"} {
		t.Run(name, func(t *testing.T) {
			res := callTool(t, s, name, nil)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), contract.ErrStoreUnavailable.Error())
		})
	}
}
