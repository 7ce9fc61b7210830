package stats

import (
	"math"

	"github.com/akhildatla/eda/pkg/table"
)

// ColumnSummary describes one column. Numeric columns fill the moment and
// quantile fields; categorical columns fill Unique, Top and Freq. Fields that
// do not apply to the column's kind are NaN or empty.
type ColumnSummary struct {
	Column string
	Kind   table.Kind
	Count  int

	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64

	Unique int
	Top    string
	Freq   int
}

// Describe summarizes every column of t in column order.
func Describe(t *table.Table) []ColumnSummary {
	cols := t.Columns()
	out := make([]ColumnSummary, len(cols))
	for i, c := range cols {
		if c.Kind().Numeric() {
			out[i] = describeNumeric(c)
		} else {
			out[i] = describeCategorical(c)
		}
	}
	return out
}

func describeNumeric(c *table.Column) ColumnSummary {
	vals := c.Floats()
	sorted := sortedCopy(vals)
	return ColumnSummary{
		Column: c.Name(),
		Kind:   c.Kind(),
		Count:  len(vals),
		Mean:   mean(vals),
		Std:    sampleStd(vals),
		Min:    quantile(sorted, 0),
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q75:    quantile(sorted, 0.75),
		Max:    quantile(sorted, 1),
	}
}

func describeCategorical(c *table.Column) ColumnSummary {
	nan := math.NaN()
	s := ColumnSummary{
		Column: c.Name(),
		Kind:   c.Kind(),
		Mean:   nan,
		Std:    nan,
		Min:    nan,
		Q25:    nan,
		Median: nan,
		Q75:    nan,
		Max:    nan,
	}

	counts := make(map[string]int)
	var order []string
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Text(i)
		if !ok {
			continue
		}
		s.Count++
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	s.Unique = len(order)
	// Strict comparison keeps the first encountered value on ties.
	for _, v := range order {
		if counts[v] > s.Freq {
			s.Top, s.Freq = v, counts[v]
		}
	}
	return s
}
