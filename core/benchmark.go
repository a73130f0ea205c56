package core

import (
	"math"
	"slices"
	"strconv"

	"github.com/huangsam/partnerscore/schema"
)

// numEdges is the number of boundaries that delimit the five score bands.
const numEdges = schema.NumLevels + 1

// spreadFraction is the relative half-width used when every observed value is identical.
const spreadFraction = 0.10

// ComputeRanges derives quintile ranges for every enabled quantitative metric
// from the raw partner values. Metrics without any parseable value keep their ranges.
// Qualitative and disabled metrics pass through unchanged. The input criteria are not modified.
func ComputeRanges(partners []schema.RawPartner, criteria schema.Criteria) schema.Criteria {
	next := criteria.Clone()
	for key, crit := range next {
		if !crit.Enabled || crit.Type != schema.Quantitative {
			continue
		}
		values := collectValues(partners, key)
		if len(values) == 0 {
			continue
		}
		crit.Ranges = rangesFromEdges(benchmarkEdges(values), crit.Direction, crit.Unit)
		next[key] = crit
	}
	return next
}

// SummarizeBenchmark compares old and new ranges for the enabled quantitative metrics,
// in catalog order. A metric is updated when its ranges differ and skipped otherwise.
func SummarizeBenchmark(before, after schema.Criteria) schema.BenchmarkSummary {
	summary := schema.BenchmarkSummary{Updated: []string{}, Skipped: []string{}}
	for _, change := range PreviewBenchmark(before, after) {
		if change.Updated {
			summary.Updated = append(summary.Updated, change.Name)
		} else {
			summary.Skipped = append(summary.Skipped, change.Name)
		}
	}
	return summary
}

// PreviewBenchmark lists the before and after ranges of every enabled quantitative metric.
func PreviewBenchmark(before, after schema.Criteria) []schema.BenchmarkChange {
	var changes []schema.BenchmarkChange
	for _, key := range before.Keys() {
		crit := before[key]
		if !crit.Enabled || crit.Type != schema.Quantitative {
			continue
		}
		name := crit.Name
		if name == "" {
			name = key
		}
		newRanges := after[key].Ranges
		changes = append(changes, schema.BenchmarkChange{
			Key:     key,
			Name:    name,
			Unit:    crit.Unit,
			Updated: !crit.Ranges.Equal(newRanges),
			Before:  crit.Ranges,
			After:   newRanges,
		})
	}
	return changes
}

// collectValues parses the raw values of one metric, dropping missing and unparseable ones.
func collectValues(partners []schema.RawPartner, key string) []float64 {
	values := make([]float64, 0, len(partners))
	for _, p := range partners {
		if v, ok := schema.ParseNumber(p.RawValue(key)); ok {
			values = append(values, v)
		}
	}
	return values
}

// benchmarkEdges returns the six band boundaries for the observed values.
// Identical values get a symmetric spread around the value. Otherwise the edges
// are the 0/20/40/60/80/100th percentiles with duplicates dropped and the last
// edge repeated until there are six.
func benchmarkEdges(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		v := lo
		s := math.Max(math.Abs(v)*spreadFraction, 1)
		return []float64{v - 2*s, v - s, v - s/2, v + s/2, v + s, v + 2*s}
	}

	edges := make([]float64, 0, numEdges)
	for i := range numEdges {
		edges = append(edges, quantile(sorted, float64(i)/float64(schema.NumLevels)))
	}
	edges = slices.Compact(edges)
	for len(edges) < numEdges {
		edges = append(edges, edges[len(edges)-1])
	}
	return edges
}

// quantile computes the q-th quantile of sorted values with linear interpolation.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if upper >= len(sorted) {
		upper = len(sorted) - 1
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// rangesFromEdges turns band boundaries into score ranges. Bin 0 holds the lowest values:
// it is open below and maps to score 1 when higher is better or score 5 when lower is better.
// The top bin is open above.
func rangesFromEdges(edges []float64, dir schema.Direction, unit schema.Unit) schema.Ranges {
	ranges := make(schema.Ranges, schema.NumLevels)
	for bin := range schema.NumLevels {
		var r schema.Range
		if bin > 0 {
			r.Min = formatBound(edges[bin], unit, true)
		}
		if bin < schema.NumLevels-1 {
			r.Max = formatBound(edges[bin+1], unit, false)
		}
		score := schema.Score(bin + 1)
		if dir == schema.LowerIsBetter {
			score = schema.MaxScore - schema.Score(bin)
		}
		ranges[score] = r
	}
	return ranges
}

// roundingSlack absorbs float noise such as 0.29*100 = 28.999999999999996 before rounding.
const roundingSlack = 1e-9

// formatBound rounds a boundary to two decimals (down for lower bounds, up for upper bounds)
// and renders it as an integer for whole values or integer units.
func formatBound(v float64, unit schema.Unit, lower bool) string {
	round := math.Ceil
	slack := -roundingSlack
	if lower {
		round = math.Floor
		slack = roundingSlack
	}

	rounded := round(v*100+slack) / 100
	if _, ok := schema.IntegerUnits[unit]; ok {
		rounded = round(rounded)
	}
	if rounded == 0 {
		rounded = 0 // drop the sign of negative zero
	}
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}
