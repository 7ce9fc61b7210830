package chart

import (
	"math"
	"strconv"
)

// DefaultBins is the number of histogram bins used when a Spec sets none.
const DefaultBins = 20

// Histogram splits the range of vals into bins equal-width intervals and
// counts the values in each. Intervals are half-open except the last, which
// includes the maximum. When every value is equal the range is widened by
// 0.5 on each side. NaN and infinite values are ignored.
func Histogram(vals []float64, bins int) (edges []float64, counts []int) {
	if bins <= 0 {
		bins = DefaultBins
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, v := range vals {
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		n++
	}
	if n == 0 {
		return nil, nil
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	if !finite(width) {
		// hi-lo overflows for extremes of opposite sign.
		width = hi/float64(bins) - lo/float64(bins)
	}
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	counts = make([]int, bins)
	for _, v := range vals {
		if !finite(v) {
			continue
		}
		pos := (v - lo) / width
		if !finite(pos) {
			pos = v/width - lo/width
		}
		i := int(pos)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}
	return edges, counts
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func binLabel(lo float64) string {
	return strconv.FormatFloat(lo, 'f', 1, 64)
}
