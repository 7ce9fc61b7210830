package stats

import (
	"fmt"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"github.com/akhildatla/eda/pkg/table"
)

// CorrelationMatrix holds pairwise Pearson coefficients. Values is square
// and symmetric, indexed like Columns.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Coefficient is one entry of a correlation ranking.
type Coefficient struct {
	Column string
	Value  float64
}

// Correlation computes the Pearson coefficient of every pair of columns over
// the rows where both are present. A pair with fewer than two such rows, or
// with a constant side, is NaN. The diagonal is 1 for every column that has
// a defined coefficient with itself.
func Correlation(t *table.Table, columns ...string) (*CorrelationMatrix, error) {
	if err := t.Require(columns...); err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	cols := make([]*table.Column, len(columns))
	for i, name := range columns {
		c, err := t.Numeric(name)
		if err != nil {
			return nil, fmt.Errorf("correlation: %w", err)
		}
		cols[i] = c
	}

	valid := make([]*table.Bitmap, len(cols))
	for i, c := range cols {
		valid[i] = c.Valid()
	}

	m := &CorrelationMatrix{
		Columns: append([]string(nil), columns...),
		Values:  make([][]float64, len(cols)),
	}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := pearson(cols[i], cols[j], valid[i].And(valid[j]))
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func pearson(a, b *table.Column, rows *table.Bitmap) float64 {
	idx := rows.Indices()
	if len(idx) < 2 {
		return math.NaN()
	}
	xs := make([]float64, len(idx))
	ys := make([]float64, len(idx))
	for k, i := range idx {
		xs[k], _ = a.Float(i)
		ys[k], _ = b.Float(i)
	}
	if constant(xs) || constant(ys) {
		return math.NaN()
	}
	r, err := mstats.Correlation(xs, ys)
	if err != nil {
		return math.NaN()
	}
	// Rounding can push collinear data just past ±1.
	return math.Max(-1, math.Min(1, r))
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

// At returns the coefficient of columns a and b.
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

func (m *CorrelationMatrix) index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Ranking returns the coefficients of every column with target: target
// itself first, then the others by coefficient descending. NaN coefficients
// go last and ties keep matrix column order.
func (m *CorrelationMatrix) Ranking(target string) ([]Coefficient, error) {
	ti := m.index(target)
	if ti < 0 {
		return nil, fmt.Errorf("ranking: %w", &table.ColumnError{Columns: []string{target}, Reason: table.ReasonNotFound})
	}
	out := []Coefficient{{Column: target, Value: m.Values[ti][ti]}}
	rest := make([]Coefficient, 0, len(m.Columns)-1)
	for j, name := range m.Columns {
		if j != ti {
			rest = append(rest, Coefficient{Column: name, Value: m.Values[ti][j]})
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		a, b := rest[i].Value, rest[j].Value
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		return a > b
	})
	return append(out, rest...), nil
}
