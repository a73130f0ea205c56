package schema

import "strings"

// metricAliases maps normalized free-text column names to catalog keys.
// Only import boundaries consult it; scoring and classification work on keys.
var metricAliases = map[string]string{
	"revenue":               "annual_revenues",
	"revenues":              "annual_revenues",
	"annual_revenue":        "annual_revenues",
	"total_revenue":         "annual_revenues",
	"yoy_growth":            "yoy_revenue_growth",
	"revenue_growth":        "yoy_revenue_growth",
	"growth":                "yoy_revenue_growth",
	"year_over_year_growth": "yoy_revenue_growth",
	"margin":                "gross_margin",
	"gm":                    "gross_margin",
	"deal_size":             "avg_deal_size",
	"average_deal":          "avg_deal_size",
	"dso":                   "days_sales_outstanding",
	"pipeline":              "pipeline_value",
	"open_pipeline":         "pipeline_value",
	"win":                   "win_rate",
	"close_rate":            "win_rate",
	"new_customers":         "new_logos",
	"logos":                 "new_logos",
	"deal_regs":             "deal_registrations",
	"registered_deals":      "deal_registrations",
	"sales_cycle":           "sales_cycle_days",
	"cycle_length":          "sales_cycle_days",
	"certifications":        "certified_staff",
	"certs":                 "certified_staff",
	"certified_engineers":   "certified_staff",
	"training":              "training_completion",
	"enablement":            "training_completion",
	"tech_capability":       "technical_capability",
	"technical_skills":      "technical_capability",
	"retention":             "customer_retention",
	"renewal_rate":          "customer_retention",
	"csat":                  "csat_score",
	"satisfaction":          "csat_score",
	"escalated_tickets":     "escalations",
	"support_escalations":   "escalations",
	"alignment":             "strategic_alignment",
	"exec_sponsor":          "executive_sponsorship",
	"executive_sponsor":     "executive_sponsorship",
	"marketing":             "marketing_engagement",
	"co_marketing":          "marketing_engagement",
	"coverage":              "market_coverage",
	"geographic_coverage":   "market_coverage",
}

// ResolveMetricKey maps a free-text metric label to its catalog key.
// It accepts the key itself, a raw_ field name, the display name or a known alias.
func ResolveMetricKey(label string) (string, bool) {
	norm := NormalizeLabel(label)
	norm = strings.TrimPrefix(norm, RawFieldPrefix)
	if norm == "" {
		return "", false
	}
	for _, m := range Catalog() {
		if norm == m.Key || norm == NormalizeLabel(m.Name) {
			return m.Key, true
		}
	}
	if key, ok := metricAliases[norm]; ok {
		return key, true
	}
	// Display names often carry a unit suffix such as "(%)" or "($)".
	for _, suffix := range []string{"_pct", "_percent", "_usd", "_days", "_count"} {
		if trimmed, found := strings.CutSuffix(norm, suffix); found {
			if key, ok := ResolveMetricKey(trimmed); ok {
				return key, true
			}
		}
	}
	return "", false
}
