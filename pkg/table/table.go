// Package table provides the immutable, typed Table the summarizer operates on.
//
// A Table holds dataframe-go series restricted to three kinds: integer
// (SeriesInt64), float (SeriesFloat64) and categorical (SeriesString). A
// missing value is a nil cell. Column names are validated once, when the
// Table is built, so that lookups by name fail at the boundary with a
// ColumnError instead of deep inside an aggregation.
//
//	t, err := table.New(
//	    dataframe.NewSeriesString("sex", nil, "F", "M"),
//	    dataframe.NewSeriesInt64("G3", nil, 11, 9),
//	)
//	g3, err := t.Numeric("G3")
package table

import (
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Table is an ordered set of named, row-aligned columns. Tables are never
// mutated; WithColumn returns a new Table sharing the existing columns.
type Table struct {
	cols  []*Column
	index map[string]int
	nrows int
}

// ColumnInfo describes one column of a Table.
type ColumnInfo struct {
	Name string
	Kind Kind
}

// New builds a Table from series. Every series must be a SeriesInt64,
// SeriesFloat64 or SeriesString, names must be non-empty and unique ignoring
// case, and all series must have the same length.
func New(series ...dataframe.Series) (*Table, error) {
	t := &Table{
		cols:  make([]*Column, 0, len(series)),
		index: make(map[string]int, len(series)),
	}
	// dataframe-go compares names case-insensitively.
	folded := make(map[string]bool, len(series))
	for i, s := range series {
		name := s.Name()
		if name == "" {
			return nil, columnErr(name, ReasonEmptyName)
		}
		if folded[strings.ToLower(name)] {
			return nil, columnErr(name, ReasonExists)
		}
		folded[strings.ToLower(name)] = true
		kind := kindOf(s)
		if kind == KindUnknown {
			return nil, columnErr(name, ReasonUnsupported)
		}
		if i == 0 {
			t.nrows = s.NRows()
		} else if s.NRows() != t.nrows {
			return nil, columnErr(name, ReasonLength)
		}
		t.index[name] = i
		t.cols = append(t.cols, &Column{name: name, kind: kind, series: s})
	}
	return t, nil
}

// NRows returns the number of rows.
func (t *Table) NRows() int { return t.nrows }

// NCols returns the number of columns.
func (t *Table) NCols() int { return len(t.cols) }

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return t.nrows, len(t.cols) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Schema returns the name and kind of every column in table order.
func (t *Table) Schema() []ColumnInfo {
	out := make([]ColumnInfo, len(t.cols))
	for i, c := range t.cols {
		out[i] = ColumnInfo{Name: c.name, Kind: c.kind}
	}
	return out
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Columns returns the columns in table order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// Column retrieves a column by name.
func (t *Table) Column(name string) (*Column, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, columnErr(name, ReasonNotFound)
	}
	return t.cols[idx], nil
}

// Numeric retrieves a column by name and checks that it holds numbers.
func (t *Table) Numeric(name string) (*Column, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !c.kind.Numeric() {
		return nil, columnErr(name, ReasonNotNumeric)
	}
	return c, nil
}

// Require checks that every name is a column, reporting all absent names at once.
func (t *Table) Require(names ...string) error {
	var missing []string
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &ColumnError{Columns: missing, Reason: ReasonRequiredAbsent}
	}
	return nil
}

// WithColumn returns a new Table with s appended as the last column.
// The receiver is left unchanged.
func (t *Table) WithColumn(s dataframe.Series) (*Table, error) {
	if t.Has(s.Name()) {
		return nil, columnErr(s.Name(), ReasonExists)
	}
	if len(t.cols) > 0 && s.NRows() != t.nrows {
		return nil, columnErr(s.Name(), ReasonLength)
	}
	series := make([]dataframe.Series, 0, len(t.cols)+1)
	for _, c := range t.cols {
		series = append(series, c.series)
	}
	series = append(series, s)
	return New(series...)
}

// Head returns the display form of the first n rows.
func (t *Table) Head(n int) [][]string {
	if n > t.nrows {
		n = t.nrows
	}
	if n < 0 {
		n = 0
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.cols))
		for j, c := range t.cols {
			if v, ok := c.Text(i); ok {
				row[j] = v
			} else {
				row[j] = MissingText
			}
		}
		rows[i] = row
	}
	return rows
}
