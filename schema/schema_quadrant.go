package schema

import (
	"cmp"
	"slices"
)

// LongTailQuadrantID is the reserved default quadrant.
const LongTailQuadrantID = 4

// LongTailQuadrantName is the display name of the default quadrant.
const LongTailQuadrantName = "Long Tail"

// Predicate is one (metric, level) rule inside a quadrant.
// An empty MetricKey is always satisfied.
type Predicate struct {
	MetricKey string `json:"metric" yaml:"metric" mapstructure:"metric"`
	Level     Level  `json:"level" yaml:"level" mapstructure:"level"`
}

// Quadrant is a named classification bucket with an ordered predicate list.
type Quadrant struct {
	ID         int         `json:"id" yaml:"id" mapstructure:"id"`
	Name       string      `json:"name" yaml:"name" mapstructure:"name"`
	Predicates []Predicate `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// QuadrantConfig is the full quadrant configuration.
type QuadrantConfig []Quadrant

// QuadrantAssignment is a single partner's classification for display.
type QuadrantAssignment struct {
	PartnerName  string  `json:"partner_name"`
	QuadrantID   int     `json:"quadrant_id"`
	QuadrantName string  `json:"quadrant_name"`
	TotalScore   int     `json:"total_score"`
	Percentage   float64 `json:"percentage"`
}

// DefaultQuadrants returns the built-in quadrant configuration.
func DefaultQuadrants() QuadrantConfig {
	return QuadrantConfig{
		{ID: 1, Name: "Strategic Partners", Predicates: []Predicate{
			{MetricKey: "annual_revenues", Level: LevelHigh},
			{MetricKey: "yoy_revenue_growth", Level: LevelHigh},
		}},
		{ID: 2, Name: "Rising Stars", Predicates: []Predicate{
			{MetricKey: "yoy_revenue_growth", Level: LevelHigh},
		}},
		{ID: 3, Name: "Cash Cows", Predicates: []Predicate{
			{MetricKey: "annual_revenues", Level: LevelHigh},
		}},
		{ID: LongTailQuadrantID, Name: LongTailQuadrantName},
	}
}

// Sorted returns a copy ordered by ascending quadrant ID.
func (q QuadrantConfig) Sorted() QuadrantConfig {
	sorted := slices.Clone(q)
	slices.SortStableFunc(sorted, func(a, b Quadrant) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

// Name returns the display name of a quadrant ID.
func (q QuadrantConfig) Name(id int) string {
	for _, quad := range q {
		if quad.ID == id {
			return quad.Name
		}
	}
	if id == LongTailQuadrantID {
		return LongTailQuadrantName
	}
	return ""
}
