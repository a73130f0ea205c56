package core

import (
	"cmp"
	"slices"

	"github.com/huangsam/partnerscore/schema"
)

// RankRows sorts scored rows by percentage and total score in descending order,
// breaking ties by partner name, and returns the top 'limit' rows. If limit is
// not positive or exceeds the number of rows, all rows are returned in sorted order.
func RankRows(rows []schema.ScoredRow, limit int) []schema.ScoredRow {
	ranked := slices.Clone(rows)
	slices.SortStableFunc(ranked, func(a, b schema.ScoredRow) int {
		if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
			return c
		}
		if c := cmp.Compare(b.TotalScore, a.TotalScore); c != 0 {
			return c
		}
		return cmp.Compare(schema.NameKey(a.Name), schema.NameKey(b.Name))
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
