package stats

import (
	"strconv"
	"strings"

	"github.com/akhildatla/eda/pkg/table"
)

// ColumnCount pairs a column name with a count.
type ColumnCount struct {
	Column string
	Count  int
}

// MissingReport returns the number of missing cells of every column, in
// column order.
func MissingReport(t *table.Table) []ColumnCount {
	cols := t.Columns()
	out := make([]ColumnCount, len(cols))
	for i, c := range cols {
		out[i] = ColumnCount{Column: c.Name(), Count: c.MissingCount()}
	}
	return out
}

// DuplicateCount returns the number of rows equal on every column to an
// earlier row. Two missing cells are equal. A group of k identical rows
// contributes k-1.
func DuplicateCount(t *table.Table) int {
	cols := t.Columns()
	seen := make(map[string]struct{}, t.NRows())
	dups := 0
	var b strings.Builder
	for i := 0; i < t.NRows(); i++ {
		b.Reset()
		for _, c := range cols {
			writeCell(&b, c, i)
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// writeCell appends a length-prefixed encoding of one cell so that no two
// distinct rows share a key.
func writeCell(b *strings.Builder, c *table.Column, i int) {
	v, ok := c.Text(i)
	if !ok {
		b.WriteString("~|")
		return
	}
	b.WriteString(strconv.Itoa(len(v)))
	b.WriteByte(':')
	b.WriteString(v)
	b.WriteByte('|')
}
