// Package stats computes the data-quality and descriptive summaries of a
// table.Table.
//
// Every function is pure: it reads the Table and returns a new value. A
// missing cell is never coerced to zero. Means, medians and deviations skip
// missing values, correlations use the rows where both columns are present,
// and rows whose group key is missing are left out of a grouping.
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
)

// mean returns the arithmetic mean of vals, or NaN when vals is empty.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m, err := mstats.Mean(vals)
	if err != nil {
		return math.NaN()
	}
	return m
}

// median returns the middle value of vals, or NaN when vals is empty.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m, err := mstats.Median(vals)
	if err != nil {
		return math.NaN()
	}
	return m
}

// sampleStd returns the standard deviation with an n-1 divisor, or NaN when
// fewer than two values are present.
func sampleStd(vals []float64) float64 {
	if len(vals) <= 1 {
		return math.NaN()
	}
	sd, err := mstats.StandardDeviationSample(vals)
	if err != nil {
		return math.NaN()
	}
	return sd
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}

// compareKeys orders two group keys of the same column: numbers
// numerically, text lexically.
func compareKeys(a, b any) int {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return cmpOrdered(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmpOrdered(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmpOrdered(x, y)
		}
	}
	return 0
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
