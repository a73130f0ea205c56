package contract

import (
	"testing"

	"github.com/huangsam/partnerscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Backend:   "sqlite",
		Output:    "text",
		Limit:     DefaultResultLimit,
		Precision: DefaultPrecision,
		Color:     "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "uppercase output", mutate: func(in *ConfigRawInput) { in.Output = "JSON" }},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "--output-file is required"},
		{name: "parquet with file", mutate: func(in *ConfigRawInput) { in.Output = "parquet"; in.OutputFile = "scores.parquet" }},
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: "limit must be greater than 0"},
		{name: "limit too large", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: "cannot exceed"},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: "precision must be 1 or 2"},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: "invalid --color value"},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: "width cannot be negative"},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.Backend = "oracle" }, expectError: "invalid backend"},
		{name: "none backend", mutate: func(in *ConfigRawInput) { in.Backend = "none" }},
		{name: "mysql without dsn", mutate: func(in *ConfigRawInput) { in.Backend = "mysql" }, expectError: "db-connect is required"},
		{
			name: "mysql with dsn",
			mutate: func(in *ConfigRawInput) {
				in.Backend = "mysql"
				in.DBConnect = "user:pass@tcp(localhost:3306)/partnerscore"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Quadrants)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, schema.SQLiteBackend, cfg.Backend)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.DefaultQuadrants(), cfg.Quadrants)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(db:3306)/scores", false},
		{"mysql no tcp", schema.MySQLBackend, "root:pw@db/scores", true},
		{"mysql no db", schema.MySQLBackend, "root:pw@tcp(db:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=db user=u password=p dbname=scores", false},
		{"postgres no host", schema.PostgreSQLBackend, "user=u dbname=scores", true},
		{"postgres no dbname", schema.PostgreSQLBackend, "host=db user=u", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseQuadrants(t *testing.T) {
	t.Run("sorted with long tail appended", func(t *testing.T) {
		quads, err := ParseQuadrants([]QuadrantRawInput{
			{ID: 2, Name: "Growers", Rules: []RuleRawInput{{Metric: "YoY Growth", Level: "HIGH"}}},
			{ID: 1, Name: "Stars", Rules: []RuleRawInput{
				{Metric: "annual_revenues", Level: "high"},
				{Metric: "win_rate", Level: "any"},
			}},
		})
		require.NoError(t, err)
		require.Len(t, quads, 3)
		assert.Equal(t, 1, quads[0].ID)
		assert.Equal(t, 2, quads[1].ID)
		assert.Equal(t, schema.LongTailQuadrantID, quads[2].ID)
		assert.Equal(t, schema.Predicate{MetricKey: "yoy_revenue_growth", Level: schema.LevelHigh}, quads[1].Predicates[0])
	})

	t.Run("unknown metric kept verbatim", func(t *testing.T) {
		quads, err := ParseQuadrants([]QuadrantRawInput{
			{ID: 1, Rules: []RuleRawInput{{Metric: "loyalty_points", Level: "mid"}}},
		})
		require.NoError(t, err)
		assert.Equal(t, "loyalty_points", quads[0].Predicates[0].MetricKey)
		assert.Equal(t, "Quadrant 1", quads[0].Name)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParseQuadrants([]QuadrantRawInput{{ID: 0}})
		assert.Error(t, err)

		_, err = ParseQuadrants([]QuadrantRawInput{{ID: 1}, {ID: 1}})
		assert.ErrorContains(t, err, "duplicate")

		_, err = ParseQuadrants([]QuadrantRawInput{{ID: 1, Rules: []RuleRawInput{{Metric: "win_rate", Level: "top"}}}})
		assert.ErrorContains(t, err, "invalid level")
	})
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Quadrants: schema.DefaultQuadrants()}
	clone := cfg.Clone()
	clone.Quadrants[0].Predicates[0].Level = schema.LevelLow
	assert.Equal(t, schema.LevelHigh, cfg.Quadrants[0].Predicates[0].Level)
}
