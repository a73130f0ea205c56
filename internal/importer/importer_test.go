package importer

import (
	"strings"
	"testing"

	"github.com/huangsam/partnerscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		header   string
		identity string
		metric   string
	}{
		{"Partner Name", schema.FieldPartnerName, ""},
		{"Company", schema.FieldPartnerName, ""},
		{"Discount (%)", schema.FieldDiscountPct, ""},
		{"Discount Percent", schema.FieldDiscountPct, ""},
		{"Account Manager", schema.FieldManagerName, ""},
		{"raw_annual_revenues", "", "annual_revenues"},
		{"Annual Revenues", "", "annual_revenues"},
		{"YoY Growth", "", "yoy_revenue_growth"},
		{"CSAT", "", "csat_score"},
		{"Win Rate (%)", "", "win_rate"},
		{"Favorite Color", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			identity, metric := ResolveHeader(tt.header)
			assert.Equal(t, tt.identity, identity)
			assert.Equal(t, tt.metric, metric)
		})
	}
}

func TestReadPartnersCSV(t *testing.T) {
	input := "\ufeffPartner Name,Year,Tier,Revenue,YoY Growth (%),Market Coverage,Favorite Color\n" +
		"Acme,2024,Gold,\"$200,000\",15%,Regional,blue\n" +
		"\n" +
		",2024,Silver,$1,1%,Global,red\n" +
		"  Globex ,2023,,$900000,,Global\n"

	result, err := ReadPartnersCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Favorite Color"}, result.Unmapped)
	assert.Equal(t, []int{4}, result.Skipped)
	require.Len(t, result.Partners, 2)

	acme := result.Partners[0]
	assert.Equal(t, "Acme", acme.Name)
	assert.Equal(t, 2024, acme.Year)
	assert.Equal(t, "Gold", acme.Tier)
	assert.Equal(t, map[string]string{
		"annual_revenues":    "$200,000",
		"yoy_revenue_growth": "15%",
		"market_coverage":    "Regional",
	}, acme.Raw)

	globex := result.Partners[1]
	assert.Equal(t, "Globex", globex.Name)
	assert.Equal(t, "$900000", globex.RawValue("annual_revenues"))
	_, hasGrowth := globex.Raw["yoy_revenue_growth"]
	assert.False(t, hasGrowth, "empty cells are not stored")
}

func TestReadPartnersCSV_EndToEndScore(t *testing.T) {
	input := "partner_name,raw_annual_revenues,raw_yoy_revenue_growth\nAcme,\"$200,000\",15%\n"
	result, err := ReadPartnersCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Partners, 1)
	assert.Equal(t, "$200,000", result.Partners[0].RawValue("annual_revenues"))
}

func TestReadPartnersCSV_Errors(t *testing.T) {
	_, err := ReadPartnersCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoNameColumn)

	_, err = ReadPartnersCSV(strings.NewReader("revenue,growth\n1,2\n"))
	assert.ErrorIs(t, err, ErrNoNameColumn)

	_, err = ReadPartnersCSV(strings.NewReader("name,revenue\n\"unterminated,1\n"))
	assert.Error(t, err)
}
