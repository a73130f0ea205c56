package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/huangsam/partnerscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCriterionValidate(t *testing.T) {
	tests := []struct {
		name    string
		crit    schema.Criterion
		wantErr error
	}{
		{
			name: "valid quantitative",
			crit: schema.Criterion{Type: schema.Quantitative, Direction: schema.HigherIsBetter,
				Ranges: schema.Ranges{1: {Max: "10"}, 5: {Min: "$1,000"}}},
		},
		{
			name: "valid qualitative",
			crit: schema.Criterion{Type: schema.Qualitative, Direction: schema.HigherIsBetter,
				Descriptors: schema.Descriptors{1: "low", 5: "high"}},
		},
		{
			name:    "unknown direction",
			crit:    schema.Criterion{Type: schema.Quantitative, Direction: "sideways"},
			wantErr: schema.ErrUnknownDirection,
		},
		{
			name:    "unknown type",
			crit:    schema.Criterion{Type: "ordinal", Direction: schema.LowerIsBetter},
			wantErr: schema.ErrUnknownMetricType,
		},
		{
			name: "mixed quantitative",
			crit: schema.Criterion{Type: schema.Quantitative, Direction: schema.HigherIsBetter,
				Ranges: schema.Ranges{1: {}}, Descriptors: schema.Descriptors{1: "x"}},
			wantErr: schema.ErrMixedCriterion,
		},
		{
			name: "mixed qualitative",
			crit: schema.Criterion{Type: schema.Qualitative, Direction: schema.HigherIsBetter,
				Ranges: schema.Ranges{1: {}}, Descriptors: schema.Descriptors{1: "x"}},
			wantErr: schema.ErrMixedCriterion,
		},
		{
			name: "bad bound",
			crit: schema.Criterion{Type: schema.Quantitative, Direction: schema.HigherIsBetter,
				Ranges: schema.Ranges{2: {Min: "ten"}}},
			wantErr: schema.ErrBadBound,
		},
		{
			name: "score out of range",
			crit: schema.Criterion{Type: schema.Qualitative, Direction: schema.HigherIsBetter,
				Descriptors: schema.Descriptors{6: "beyond"}},
			wantErr: schema.ErrBadScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.crit.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCriteriaValidateNamesKey(t *testing.T) {
	criteria := schema.DefaultCriteria()
	bad := criteria["win_rate"]
	bad.Direction = "up"
	criteria["win_rate"] = bad

	err := criteria.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownDirection)
	assert.Contains(t, err.Error(), "win_rate")
}

func TestCriteriaCloneIsDeep(t *testing.T) {
	original := schema.DefaultCriteria()
	clone := original.Clone()

	clone["annual_revenues"].Ranges[1] = schema.Range{Max: "1"}
	clone["market_coverage"].Descriptors[1] = "Nowhere"

	assert.Equal(t, "50000", original["annual_revenues"].Ranges[1].Max)
	assert.Equal(t, "Single city", original["market_coverage"].Descriptors[1])
}

func TestCriteriaKeysOrder(t *testing.T) {
	criteria := schema.Criteria{
		"zeta_custom":        {},
		"yoy_revenue_growth": {},
		"alpha_custom":       {},
		"annual_revenues":    {},
	}
	assert.Equal(t, []string{"annual_revenues", "yoy_revenue_growth", "alpha_custom", "zeta_custom"}, criteria.Keys())
}

func TestCriteriaEnabledKeys(t *testing.T) {
	criteria := schema.Criteria{
		"annual_revenues":    {Enabled: true},
		"yoy_revenue_growth": {Enabled: false},
		"win_rate":           {Enabled: true},
	}
	assert.Equal(t, []string{"annual_revenues", "win_rate"}, criteria.EnabledKeys())
}

func TestCriteriaSerializationForms(t *testing.T) {
	original := schema.DefaultCriteria()

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(original)
		require.NoError(t, err)
		var decoded schema.Criteria
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, original, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(original)
		require.NoError(t, err)
		assert.Contains(t, string(data), "annual_revenues:")
		var decoded schema.Criteria
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, original, decoded)
	})
}

func TestRangesEqual(t *testing.T) {
	a := schema.Ranges{1: {Max: "10"}, 2: {Min: "10", Max: "20"}}
	b := schema.Ranges{1: {Max: "10"}, 2: {Min: "10", Max: "20"}}
	c := schema.Ranges{1: {Max: "10"}, 2: {Min: "11", Max: "20"}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
