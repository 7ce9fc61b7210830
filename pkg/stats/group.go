package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/akhildatla/eda/pkg/table"
)

// GroupAggregate is the mean of a value column within one group.
type GroupAggregate struct {
	Key   any    // int64, float64 or string
	Label string // display form of Key
	Mean  float64
	Count int // present values averaged
}

// partition holds the row indices of each distinct key in first-seen order.
type partition struct {
	keys   []any
	labels map[any]string
	rows   map[any][]int
}

// partitionBy groups the rows of c by value. Rows with a missing key are
// dropped.
func partitionBy(c *table.Column) *partition {
	p := &partition{
		labels: make(map[any]string),
		rows:   make(map[any][]int),
	}
	for i := 0; i < c.Len(); i++ {
		key := c.Key(i)
		if key == nil {
			continue
		}
		if _, seen := p.rows[key]; !seen {
			p.keys = append(p.keys, key)
			p.labels[key], _ = c.Text(i)
		}
		p.rows[key] = append(p.rows[key], i)
	}
	return p
}

// GroupMean averages valueColumn within each distinct value of groupColumn.
// The result is sorted by mean descending with ties broken by key ascending;
// groups without any present value have a NaN mean and sort last.
func GroupMean(t *table.Table, groupColumn, valueColumn string) ([]GroupAggregate, error) {
	group, err := t.Column(groupColumn)
	if err != nil {
		return nil, fmt.Errorf("groupMean: %w", err)
	}
	value, err := t.Numeric(valueColumn)
	if err != nil {
		return nil, fmt.Errorf("groupMean: %w", err)
	}

	p := partitionBy(group)
	out := make([]GroupAggregate, 0, len(p.keys))
	for _, key := range p.keys {
		vals := make([]float64, 0, len(p.rows[key]))
		for _, i := range p.rows[key] {
			if v, ok := value.Float(i); ok {
				vals = append(vals, v)
			}
		}
		out = append(out, GroupAggregate{
			Key:   key,
			Label: p.labels[key],
			Mean:  mean(vals),
			Count: len(vals),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		aNaN, bNaN := math.IsNaN(a.Mean), math.IsNaN(b.Mean)
		switch {
		case aNaN != bNaN:
			return bNaN
		case !aNaN && a.Mean != b.Mean:
			return a.Mean > b.Mean
		}
		return compareKeys(a.Key, b.Key) < 0
	})
	return out, nil
}

// ValueCount is the number of rows holding one distinct value.
type ValueCount struct {
	Key   any
	Label string
	Count int
}

// Counts is a distribution of distinct values.
type Counts []ValueCount

// ValueCounts counts the present values of column, most frequent first.
// Equal counts keep the order in which the values first appear.
func ValueCounts(t *table.Table, column string) (Counts, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, fmt.Errorf("valueCounts: %w", err)
	}
	p := partitionBy(c)
	out := make(Counts, len(p.keys))
	for i, key := range p.keys {
		out[i] = ValueCount{Key: key, Label: p.labels[key], Count: len(p.rows[key])}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// SortedByKey returns a copy of c ordered by value ascending.
func (c Counts) SortedByKey() Counts {
	out := make(Counts, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return compareKeys(out[i].Key, out[j].Key) < 0 })
	return out
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	n := 0
	for _, vc := range c {
		n += vc.Count
	}
	return n
}
