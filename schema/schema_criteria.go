package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Range is a numeric band for one score. Empty bounds are unbounded on that side.
// Bounds are kept in their display form so benchmark formatting survives a round trip.
type Range struct {
	Min string `json:"min" yaml:"min"`
	Max string `json:"max" yaml:"max"`
}

// Ranges maps each score to its numeric band.
type Ranges map[Score]Range

// Descriptors maps each score to the exact text that earns it.
type Descriptors map[Score]string

// Criterion is the active, editable rubric entry for a metric.
// Quantitative criteria carry Ranges and qualitative criteria carry Descriptors.
type Criterion struct {
	Name        string      `json:"name" yaml:"name"`
	Type        MetricType  `json:"type" yaml:"type"`
	Unit        Unit        `json:"unit,omitempty" yaml:"unit,omitempty"`
	Direction   Direction   `json:"direction" yaml:"direction"`
	Enabled     bool        `json:"enabled" yaml:"enabled"`
	Ranges      Ranges      `json:"ranges,omitempty" yaml:"ranges,omitempty"`
	Descriptors Descriptors `json:"descriptors,omitempty" yaml:"descriptors,omitempty"`
}

// Criteria is the full rubric keyed by metric key.
type Criteria map[string]Criterion

// Errors returned by criterion validation.
var (
	ErrUnknownMetricType = errors.New("unknown metric type")
	ErrUnknownDirection  = errors.New("unknown direction")
	ErrMixedCriterion    = errors.New("criterion carries both ranges and descriptors")
	ErrBadBound          = errors.New("range bound is not numeric")
	ErrBadScore          = errors.New("score label outside 1..5")
)

// Validate checks the tagged-union shape of the criterion.
func (c Criterion) Validate() error {
	switch c.Direction {
	case HigherIsBetter, LowerIsBetter:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirection, c.Direction)
	}

	switch c.Type {
	case Quantitative:
		if len(c.Descriptors) > 0 {
			return ErrMixedCriterion
		}
		for score, r := range c.Ranges {
			if !score.Valid() {
				return fmt.Errorf("%w: %d", ErrBadScore, score)
			}
			for _, bound := range []string{r.Min, r.Max} {
				if strings.TrimSpace(bound) == "" {
					continue
				}
				if _, ok := ParseNumber(bound); !ok {
					return fmt.Errorf("%w: score %d bound %q", ErrBadBound, score, bound)
				}
			}
		}
	case Qualitative:
		if len(c.Ranges) > 0 {
			return ErrMixedCriterion
		}
		for score := range c.Descriptors {
			if !score.Valid() {
				return fmt.Errorf("%w: %d", ErrBadScore, score)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMetricType, c.Type)
	}
	return nil
}

// Clone returns a deep copy of the criterion.
func (c Criterion) Clone() Criterion {
	clone := c
	if c.Ranges != nil {
		clone.Ranges = make(Ranges, len(c.Ranges))
		maps.Copy(clone.Ranges, c.Ranges)
	}
	if c.Descriptors != nil {
		clone.Descriptors = make(Descriptors, len(c.Descriptors))
		maps.Copy(clone.Descriptors, c.Descriptors)
	}
	return clone
}

// Clone returns a deep copy of the criteria.
func (c Criteria) Clone() Criteria {
	clone := make(Criteria, len(c))
	for key, crit := range c {
		clone[key] = crit.Clone()
	}
	return clone
}

// Validate validates every criterion, naming the first bad key.
func (c Criteria) Validate() error {
	for _, key := range c.Keys() {
		if err := c[key].Validate(); err != nil {
			return fmt.Errorf("criterion %s: %w", key, err)
		}
	}
	return nil
}

// Keys returns metric keys in catalog order, followed by unknown keys sorted.
func (c Criteria) Keys() []string {
	keys := make([]string, 0, len(c))
	seen := make(map[string]bool, len(c))
	for _, m := range Catalog() {
		if _, ok := c[m.Key]; ok {
			keys = append(keys, m.Key)
			seen[m.Key] = true
		}
	}
	var extra []string
	for key := range c {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

// EnabledKeys returns the enabled metric keys in catalog order.
func (c Criteria) EnabledKeys() []string {
	var keys []string
	for _, key := range c.Keys() {
		if c[key].Enabled {
			keys = append(keys, key)
		}
	}
	return keys
}

// Equal reports whether two ranges hold the same bands.
func (r Ranges) Equal(other Ranges) bool {
	return maps.Equal(r, other)
}
