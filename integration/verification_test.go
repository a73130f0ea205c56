//go:build basic

// Package integration contains end-to-end tests for the partnerscore binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database tests need Docker: go test -tags database ./integration
package integration

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/partnerscore/core"
	"github.com/huangsam/partnerscore/internal/importer"
	"github.com/huangsam/partnerscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points the CLI at a fresh SQLite file.
func sqliteEnv(t *testing.T) []string {
	return []string{
		"PARTNERSCORE_BACKEND=sqlite",
		"PARTNERSCORE_DB_CONNECT=" + filepath.Join(t.TempDir(), "partnerscore.db"),
		"PARTNERSCORE_COLOR=no",
	}
}

// decodeScores parses the JSON form of the scores command.
func decodeScores(t *testing.T, out string) map[string]schema.EnrichedRow {
	var rows []schema.EnrichedRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	byName := make(map[string]schema.EnrichedRow, len(rows))
	for _, r := range rows {
		byName[r.Name] = r
	}
	return byName
}

// TestScoresVerification imports a CSV through the CLI and checks every stored total
// against an in-process score of the same file with default criteria.
func TestScoresVerification(t *testing.T) {
	env := sqliteEnv(t)
	csvPath := writePartnersCSV(t)

	_, err := runCLI(t, env, "partner", "import", csvPath)
	require.NoError(t, err)

	out, err := runCLI(t, env, "scores", "--output", "json")
	require.NoError(t, err)
	got := decodeScores(t, out)

	parsed, err := importer.ReadPartnersCSV(strings.NewReader(partnersCSV))
	require.NoError(t, err)
	want := core.RescoreAll(schema.DefaultCriteria(), parsed.Partners)

	require.Len(t, got, len(want))
	for _, w := range want {
		t.Run(w.Name, func(t *testing.T) {
			g, ok := got[w.Name]
			require.True(t, ok)
			assert.Equal(t, w.TotalScore, g.TotalScore)
			assert.Equal(t, w.MaxPossible, g.MaxPossible)
			assert.Equal(t, w.Scores, g.Scores)
		})
	}
}

// TestCriteriaChangeRescores verifies that disabling a metric re-scores stored partners.
func TestCriteriaChangeRescores(t *testing.T) {
	env := sqliteEnv(t)
	_, err := runCLI(t, env, "partner", "import", writePartnersCSV(t))
	require.NoError(t, err)

	before, err := runCLI(t, env, "scores", "--output", "json")
	require.NoError(t, err)

	_, err = runCLI(t, env, "criteria", "disable", "Win Rate")
	require.NoError(t, err)

	after, err := runCLI(t, env, "scores", "--output", "json")
	require.NoError(t, err)

	acmeBefore := decodeScores(t, before)["Acme Corp"]
	acmeAfter := decodeScores(t, after)["Acme Corp"]
	assert.Equal(t, acmeBefore.MaxPossible-int(schema.MaxScore), acmeAfter.MaxPossible)
	assert.NotContains(t, acmeAfter.Scores, "win_rate")

	runs, err := runCLI(t, env, "runs", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, runs, string(schema.TriggerCriteria))
	assert.Contains(t, runs, string(schema.TriggerPartner))
}

// TestCriteriaExportImport round-trips the rubric through YAML.
func TestCriteriaExportImport(t *testing.T) {
	env := sqliteEnv(t)
	exportPath := filepath.Join(t.TempDir(), "criteria.yaml")

	_, err := runCLI(t, env, "criteria", "export", "--output-file", exportPath)
	require.NoError(t, err)

	_, err = runCLI(t, env, "criteria", "import", exportPath)
	require.NoError(t, err)

	out, err := runCLI(t, env, "criteria", "show", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "annual_revenues")
	assert.Contains(t, out, "market_coverage")
}

// TestClassifyAndBenchmark runs the read-only commands over imported data.
func TestClassifyAndBenchmark(t *testing.T) {
	env := sqliteEnv(t)
	_, err := runCLI(t, env, "partner", "import", writePartnersCSV(t))
	require.NoError(t, err)

	out, err := runCLI(t, env, "classify", "--output", "json")
	require.NoError(t, err)
	var classified struct {
		Assignments []schema.QuadrantAssignment `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &classified))
	assert.Len(t, classified.Assignments, 3)

	_, err = runCLI(t, env, "benchmark", "--dry-run")
	require.NoError(t, err)

	_, err = runCLI(t, env, "store", "status")
	require.NoError(t, err)
}
