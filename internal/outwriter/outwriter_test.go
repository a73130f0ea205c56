package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns a config writing the given format to a temp file.
func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     output,
		OutputFile: filepath.Join(t.TempDir(), "out"),
		Precision:  1,
		Width:      120,
		UseColors:  false,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(content)
}

func readCSV(t *testing.T, cfg *contract.Config) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	return records
}

func sampleRows() []schema.ScoredRow {
	return []schema.ScoredRow{
		{
			PartnerIdentity: schema.PartnerIdentity{Name: "Globex", Year: 2024, Tier: "Gold"},
			Scores:          map[string]schema.Score{"annual_revenues": 5, "yoy_revenue_growth": 5},
			TotalScore:      10, MaxPossible: 10, Percentage: 100,
		},
		{
			PartnerIdentity: schema.PartnerIdentity{Name: "Acme"},
			Scores:          map[string]schema.Score{"annual_revenues": 3, "yoy_revenue_growth": 0},
			TotalScore:      3, MaxPossible: 5, Percentage: 60,
		},
	}
}

func TestPrintScores_Text(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintScores(sampleRows(), cfg))

	out := readOutput(t, cfg)
	assert.Contains(t, out, "Globex")
	assert.Contains(t, out, "100.0")
	assert.Contains(t, out, schema.TierExcellent)
	assert.Contains(t, out, schema.TierStrong)
	assert.Contains(t, out, "Showing 2 partners across 2 scored metrics")
}

func TestPrintScores_CSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	require.NoError(t, PrintScores(sampleRows(), cfg))

	records := readCSV(t, cfg)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"rank", "partner_name", "year", "tier", "total_score", "max_possible", "percentage", "label",
		"score_annual_revenues", "score_yoy_revenue_growth",
	}, records[0])
	assert.Equal(t, []string{"1", "Globex", "2024", "Gold", "10", "10", "100.0", schema.TierExcellent, "5", "5"}, records[1])
	assert.Equal(t, []string{"2", "Acme", "", "", "3", "5", "60.0", schema.TierStrong, "3", "0"}, records[2])
}

func TestPrintScores_JSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	require.NoError(t, PrintScores(sampleRows(), cfg))

	var result []map[string]any
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &result))
	require.Len(t, result, 2)
	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "Globex", result[0]["partner_name"])
	assert.Equal(t, schema.TierStrong, result[1]["label"])
}

func TestPrintScores_Parquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut)
	require.NoError(t, PrintScores(sampleRows(), cfg))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPrintScorecard(t *testing.T) {
	row := sampleRows()[1]
	partner := schema.RawPartner{
		PartnerIdentity: row.PartnerIdentity,
		Raw:             map[string]string{"annual_revenues": "$200,000", "yoy_revenue_growth": "oops"},
	}

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintScorecard(row, partner, cfg))
	out := readOutput(t, cfg)
	assert.Contains(t, out, "Acme: 3/5 (60.0%) Strong")
	assert.Contains(t, out, "$200,000")
	assert.Contains(t, out, "Financial Performance")

	cfg = testConfig(t, schema.JSONOut)
	require.NoError(t, PrintScorecard(row, partner, cfg))
	var card struct {
		Label string `json:"label"`
		Lines []struct {
			Key   string `json:"key"`
			Raw   string `json:"raw"`
			Score int    `json:"score"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &card))
	assert.Equal(t, schema.TierStrong, card.Label)
	require.Len(t, card.Lines, 2)
	assert.Equal(t, "annual_revenues", card.Lines[0].Key)
	assert.Equal(t, 3, card.Lines[0].Score)
	assert.Equal(t, "oops", card.Lines[1].Raw)
	assert.Equal(t, 0, card.Lines[1].Score)

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, PrintScorecard(row, partner, cfg))
	records := readCSV(t, cfg)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Acme", "annual_revenues", string(schema.CategoryFinancial), "$200,000", "3"}, records[1])
}

func sampleAssignments() []schema.QuadrantAssignment {
	return []schema.QuadrantAssignment{
		{PartnerName: "Globex", QuadrantID: 1, QuadrantName: "Strategic Partners", TotalScore: 10, Percentage: 100},
		{PartnerName: "Acme", QuadrantID: 4, QuadrantName: "Long Tail", TotalScore: 3, Percentage: 60},
		{PartnerName: "Initech", QuadrantID: 4, QuadrantName: "Long Tail", TotalScore: 2, Percentage: 20},
	}
}

func TestPrintClassification(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintClassification(sampleAssignments(), cfg))
	out := readOutput(t, cfg)
	assert.Contains(t, out, "1 Strategic Partners")
	assert.Contains(t, out, "Q1 Strategic Partners: 1\n")
	assert.Contains(t, out, "Q4 Long Tail: 2\n")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, PrintClassification(sampleAssignments(), cfg))
	records := readCSV(t, cfg)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Acme", "4", "Long Tail", "3", "60.0"}, records[2])

	cfg = testConfig(t, schema.JSONOut)
	require.NoError(t, PrintClassification(sampleAssignments(), cfg))
	var result struct {
		Assignments []schema.QuadrantAssignment `json:"assignments"`
		Quadrants   []quadrantCount             `json:"quadrants"`
	}
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &result))
	assert.Len(t, result.Assignments, 3)
	assert.Equal(t, []quadrantCount{{1, "Strategic Partners", 1}, {4, "Long Tail", 2}}, result.Quadrants)
}

func TestCountQuadrants(t *testing.T) {
	assert.Empty(t, countQuadrants(nil))
	counts := countQuadrants(sampleAssignments())
	require.Len(t, counts, 2)
	assert.Equal(t, 1, counts[0].ID)
	assert.Equal(t, 2, counts[1].Count)
}

func TestPrintCriteria(t *testing.T) {
	criteria := schema.DefaultCriteria()
	c := criteria["win_rate"]
	c.Enabled = false
	criteria["win_rate"] = c

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintCriteria(criteria, cfg))
	out := readOutput(t, cfg)
	assert.Contains(t, out, "annual_revenues")
	assert.Contains(t, out, "19 of 20 metrics enabled")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, PrintCriteria(criteria, cfg))
	records := readCSV(t, cfg)
	require.Len(t, records, len(schema.Catalog())+1)
	assert.Equal(t, []string{
		"annual_revenues", "Annual Revenues", "quantitative", "currency", "higher_is_better", "true",
		"<= 50000", "50001..150000", "150001..350000", "350001..750000", ">= 750001",
	}, records[1])

	cfg = testConfig(t, schema.JSONOut)
	require.NoError(t, PrintCriteria(criteria, cfg))
	var views []map[string]any
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &views))
	require.Len(t, views, len(schema.Catalog()))
	assert.Equal(t, "annual_revenues", views[0]["key"])
}

func TestPrintCatalog(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintCatalog(schema.Catalog(), cfg))
	out := readOutput(t, cfg)
	for _, cat := range schema.Categories() {
		assert.Contains(t, out, string(cat))
	}
	assert.Contains(t, out, "market_coverage")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, PrintCatalog(schema.Catalog(), cfg))
	records := readCSV(t, cfg)
	assert.Len(t, records, len(schema.Catalog())+1)
	assert.Equal(t, "key", records[0][0])
}

func sampleBenchmark() (schema.BenchmarkSummary, []schema.BenchmarkChange) {
	before := schema.DefaultCriteria()["win_rate"].Ranges
	after := schema.Ranges{1: {Max: "10"}, 2: {Min: "10", Max: "20"}, 3: {Min: "20", Max: "30"}, 4: {Min: "30", Max: "40"}, 5: {Min: "40"}}
	summary := schema.BenchmarkSummary{Updated: []string{"Win Rate"}, Skipped: []string{"Gross Margin"}}
	changes := []schema.BenchmarkChange{
		{Key: "gross_margin", Name: "Gross Margin", Before: schema.DefaultCriteria()["gross_margin"].Ranges, After: schema.DefaultCriteria()["gross_margin"].Ranges},
		{Key: "win_rate", Name: "Win Rate", Updated: true, Before: before, After: after},
	}
	return summary, changes
}

func TestPrintBenchmark(t *testing.T) {
	summary, changes := sampleBenchmark()

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintBenchmark(summary, changes, true, cfg))
	out := readOutput(t, cfg)
	assert.Contains(t, out, "win_rate")
	assert.NotContains(t, out, "gross_margin")
	assert.Contains(t, out, "Updated 1 metrics, skipped 1")
	assert.Contains(t, out, "skipped: Gross Margin")
	assert.Contains(t, out, "Dry run")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, PrintBenchmark(summary, changes, false, cfg))
	records := readCSV(t, cfg)
	require.Len(t, records, 1+len(changes)*schema.NumLevels)
	assert.Equal(t, []string{"win_rate", "Win Rate", "true", "5", ">= 45", ">= 40"}, records[len(records)-1])

	cfg = testConfig(t, schema.JSONOut)
	require.NoError(t, PrintBenchmark(summary, changes, true, cfg))
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &result))
	assert.Equal(t, true, result["dry_run"])
}

func sampleRuns() []schema.RescoreRun {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(250 * time.Millisecond)
	ms := int64(250)
	return []schema.RescoreRun{
		{ID: 2, UUID: "aaaabbbb-0000-4000-8000-000000000000", StartTime: start, EndTime: &end, DurationMs: &ms, PartnerCount: 3, MetricCount: 20, Trigger: schema.TriggerCriteria},
		{ID: 1, UUID: "ccccdddd-0000-4000-8000-000000000000", StartTime: start.Add(-time.Hour), Trigger: schema.TriggerManual},
	}
}

func TestPrintRuns(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, PrintRuns(sampleRuns(), cfg))
	out := readOutput(t, cfg)
	assert.Contains(t, out, "aaaabbbb")
	assert.Contains(t, out, "250ms")
	assert.Contains(t, out, "Showing 2 runs")

	cfg = testConfig(t, schema.CSVOut)
	require.NoError(t, PrintRuns(sampleRuns(), cfg))
	records := readCSV(t, cfg)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"2", "aaaabbbb-0000-4000-8000-000000000000", "criteria",
		"2026-03-01T12:00:00Z", "2026-03-01T12:00:00Z", "250", "3", "20",
	}, records[1])
	assert.Equal(t, "", records[2][4])

	cfg = testConfig(t, schema.ParquetOut)
	require.NoError(t, PrintRuns(sampleRuns(), cfg))
	_, err := os.Stat(cfg.OutputFile)
	assert.NoError(t, err)
}

func TestPrintPartners(t *testing.T) {
	partners := []schema.RawPartner{
		{PartnerIdentity: schema.PartnerIdentity{Name: "Acme", Year: 2024, Country: "US"}, Raw: map[string]string{"win_rate": "25%", "annual_revenues": "$200,000"}},
		{PartnerIdentity: schema.PartnerIdentity{Name: "Globex"}, Raw: map[string]string{"custom_metric": "x"}},
	}

	cfg := testConfig(t, schema.CSVOut)
	require.NoError(t, PrintPartners(partners, cfg))
	records := readCSV(t, cfg)
	require.Len(t, records, 3)
	header := records[0]
	assert.Equal(t, schema.IdentityFields, header[:len(schema.IdentityFields)])
	assert.Equal(t, []string{"raw_annual_revenues", "raw_win_rate", "raw_custom_metric"}, header[len(schema.IdentityFields):])
	assert.Equal(t, "$200,000", records[1][len(schema.IdentityFields)])
	assert.Equal(t, "x", records[2][len(header)-1])

	cfg = testConfig(t, schema.TextOut)
	require.NoError(t, PrintPartners(partners, cfg))
	assert.Contains(t, readOutput(t, cfg), "Showing 2 partners")
}

func TestOutWriter(t *testing.T) {
	ow := NewOutWriter()
	summary, changes := sampleBenchmark()

	calls := []func(*contract.Config) error{
		func(cfg *contract.Config) error { return ow.WriteScores(sampleRows(), cfg) },
		func(cfg *contract.Config) error { return ow.WriteClassification(sampleAssignments(), cfg) },
		func(cfg *contract.Config) error { return ow.WriteCriteria(schema.DefaultCriteria(), cfg) },
		func(cfg *contract.Config) error { return ow.WriteCatalog(cfg) },
		func(cfg *contract.Config) error { return ow.WriteBenchmark(summary, changes, false, cfg) },
		func(cfg *contract.Config) error { return ow.WriteRuns(sampleRuns(), cfg) },
		func(cfg *contract.Config) error { return ow.WritePartners(nil, cfg) },
	}
	for _, call := range calls {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, call(cfg))
		assert.True(t, json.Valid([]byte(readOutput(t, cfg))))
	}
}
