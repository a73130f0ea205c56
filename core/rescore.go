package core

import (
	"math"

	"github.com/huangsam/partnerscore/schema"
)

// RescoreAll regenerates scored rows for every raw partner under the given criteria.
// Only enabled metrics appear in a row. Output order follows input order, and the
// result depends only on its inputs.
func RescoreAll(criteria schema.Criteria, partners []schema.RawPartner) []schema.ScoredRow {
	enabled := criteria.EnabledKeys()
	rows := make([]schema.ScoredRow, 0, len(partners))
	for _, p := range partners {
		rows = append(rows, scorePartner(p, criteria, enabled))
	}
	return rows
}

// ScorePartner scores a single raw partner.
func ScorePartner(partner schema.RawPartner, criteria schema.Criteria) schema.ScoredRow {
	return scorePartner(partner, criteria, criteria.EnabledKeys())
}

func scorePartner(p schema.RawPartner, criteria schema.Criteria, enabled []string) schema.ScoredRow {
	row := schema.ScoredRow{
		PartnerIdentity: p.PartnerIdentity,
		Scores:          make(map[string]schema.Score, len(enabled)),
	}
	scored := 0
	for _, key := range enabled {
		s, ok := ScoreMetric(key, p.RawValue(key), criteria)
		if !ok {
			row.Scores[key] = schema.Unscored
			continue
		}
		row.Scores[key] = s
		row.TotalScore += int(s)
		scored++
	}
	row.MaxPossible = int(schema.MaxScore) * scored
	row.Percentage = percentage(row.TotalScore, row.MaxPossible)
	return row
}

// percentage returns total/maxPossible*100 rounded to one decimal, or 0 when nothing was scored.
func percentage(total, maxPossible int) float64 {
	if maxPossible == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(maxPossible)*1000) / 10
}
