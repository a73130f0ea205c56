package schema

// Tier labels derived from the scorecard percentage.
const (
	TierExcellent  = "Excellent"
	TierStrong     = "Strong"
	TierDeveloping = "Developing"
	TierAtRisk     = "At Risk"
)

// EnrichedRow adds presentation data to a ScoredRow.
type EnrichedRow struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ScoredRow
}

// GetPlainLabel returns a plain text tier label for a scorecard percentage.
func GetPlainLabel(percentage float64) string {
	switch {
	case percentage >= 80:
		return TierExcellent
	case percentage >= 60:
		return TierStrong
	case percentage >= 40:
		return TierDeveloping
	default:
		return TierAtRisk
	}
}

// EnrichRows adds rank and label to a list of scored rows.
func EnrichRows(rows []ScoredRow) []EnrichedRow {
	output := make([]EnrichedRow, len(rows))
	for i, r := range rows {
		output[i] = EnrichedRow{
			Rank:      i + 1,
			Label:     GetPlainLabel(r.Percentage),
			ScoredRow: r,
		}
	}
	return output
}
