package core

import (
	"cmp"
	"slices"

	"github.com/huangsam/partnerscore/schema"
)

// Classify assigns each scored partner to the first quadrant, in ascending ID order,
// whose non-empty predicate list fully holds. Partners matching nothing land in the
// long tail quadrant. Rows with a zero total score are left out of the mapping.
func Classify(rows []schema.ScoredRow, quadrants schema.QuadrantConfig, enabledKeys []string) map[string]int {
	enabled := make(map[string]bool, len(enabledKeys))
	for _, key := range enabledKeys {
		enabled[key] = true
	}
	ordered := quadrants.Sorted()

	result := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.TotalScore == 0 {
			continue
		}
		result[row.Name] = classifyRow(row, ordered, enabled)
	}
	return result
}

func classifyRow(row schema.ScoredRow, ordered schema.QuadrantConfig, enabled map[string]bool) int {
	for _, quad := range ordered {
		if quadrantMatches(row, quad, enabled) {
			return quad.ID
		}
	}
	return schema.LongTailQuadrantID
}

// quadrantMatches requires every predicate to hold. An empty predicate list never matches.
// Predicates on an empty or disabled metric key are skipped.
func quadrantMatches(row schema.ScoredRow, quad schema.Quadrant, enabled map[string]bool) bool {
	if len(quad.Predicates) == 0 {
		return false
	}
	for _, pred := range quad.Predicates {
		if pred.MetricKey == "" || !enabled[pred.MetricKey] {
			continue
		}
		score, ok := row.Scores[pred.MetricKey]
		if !ok || !levelHolds(score, pred.Level) {
			return false
		}
	}
	return true
}

// levelHolds evaluates one level against a stored score. Unscored values fail every level.
func levelHolds(score schema.Score, level schema.Level) bool {
	if !score.Valid() {
		return false
	}
	switch level {
	case schema.LevelAny:
		return score > 0
	case schema.LevelHigh:
		return score >= 4
	case schema.LevelMid:
		return score == 3
	case schema.LevelLow:
		return score <= 2
	default:
		return false
	}
}

// Assignments turns a classification mapping into display records, ordered by
// quadrant ID, then percentage descending, then partner name.
func Assignments(rows []schema.ScoredRow, quadrants schema.QuadrantConfig, mapping map[string]int) []schema.QuadrantAssignment {
	out := make([]schema.QuadrantAssignment, 0, len(mapping))
	seen := make(map[string]bool, len(mapping))
	for _, row := range rows {
		id, ok := mapping[row.Name]
		if !ok || seen[row.Name] {
			continue
		}
		seen[row.Name] = true
		out = append(out, schema.QuadrantAssignment{
			PartnerName:  row.Name,
			QuadrantID:   id,
			QuadrantName: quadrants.Name(id),
			TotalScore:   row.TotalScore,
			Percentage:   row.Percentage,
		})
	}
	slices.SortStableFunc(out, func(a, b schema.QuadrantAssignment) int {
		if c := cmp.Compare(a.QuadrantID, b.QuadrantID); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
			return c
		}
		return cmp.Compare(a.PartnerName, b.PartnerName)
	})
	return out
}

// QuadrantCounts tallies how many partners landed in each quadrant.
func QuadrantCounts(mapping map[string]int) map[int]int {
	counts := make(map[int]int)
	for _, id := range mapping {
		counts[id]++
	}
	return counts
}
