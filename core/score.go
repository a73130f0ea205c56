package core

import (
	"github.com/huangsam/partnerscore/schema"
)

// ScoreMetric maps a raw display value to a rubric score under the given criteria.
// The boolean is false when the value is unscored: the criterion is absent or disabled,
// a qualitative value is empty or a placeholder, or a quantitative value does not parse.
// Malformed input never panics.
func ScoreMetric(key, raw string, criteria schema.Criteria) (schema.Score, bool) {
	crit, ok := criteria[key]
	if !ok || !crit.Enabled {
		return schema.Unscored, false
	}

	switch crit.Type {
	case schema.Quantitative:
		return scoreQuantitative(raw, crit.Ranges)
	case schema.Qualitative:
		return scoreQualitative(raw, crit.Descriptors)
	default:
		return schema.Unscored, false
	}
}

// scoreQuantitative tries scores from 5 down to 1 so overlapping ranges favor the higher score.
// A parsed value that matches no range falls back to the minimum score.
func scoreQuantitative(raw string, ranges schema.Ranges) (schema.Score, bool) {
	v, ok := schema.ParseNumber(raw)
	if !ok {
		return schema.Unscored, false
	}
	for s := schema.MaxScore; s >= schema.MinScore; s-- {
		r, ok := ranges[s]
		if ok && rangeContains(r, v) {
			return s, true
		}
	}
	// TODO: report values that fall into a gap between configured ranges instead of clamping silently.
	return schema.MinScore, true
}

// rangeContains reports whether v lies inside r. Unparseable bounds count as absent,
// and a range without any bound matches nothing.
func rangeContains(r schema.Range, v float64) bool {
	lo, hasLo := schema.ParseNumber(r.Min)
	hi, hasHi := schema.ParseNumber(r.Max)
	switch {
	case hasLo && hasHi:
		return lo <= v && v <= hi
	case hasLo:
		return v >= lo
	case hasHi:
		return v <= hi
	default:
		return false
	}
}

// scoreQualitative matches descriptors exactly, trying scores from 1 up to 5.
func scoreQualitative(raw string, descriptors schema.Descriptors) (schema.Score, bool) {
	if schema.IsPlaceholder(raw) {
		return schema.Unscored, false
	}
	for _, s := range schema.AllScores() {
		if d, ok := descriptors[s]; ok && d == raw {
			return s, true
		}
	}
	return schema.Unscored, false
}
