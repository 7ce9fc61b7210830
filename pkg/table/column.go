package table

import (
	"math"
	"strconv"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// MissingText is how a missing cell is displayed.
const MissingText = "NaN"

// Column is a read-only typed view of one table column.
type Column struct {
	name   string
	kind   Kind
	series dataframe.Series
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the inferred column kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows.
func (c *Column) Len() int { return c.series.NRows() }

// IsMissing checks if the value at row i is the missing marker.
func (c *Column) IsMissing(i int) bool {
	if i < 0 || i >= c.series.NRows() {
		return true
	}
	return c.series.Value(i) == nil
}

// Float extracts a numeric value at row i.
// Returns (value, ok) where ok is false if missing or the column is categorical.
func (c *Column) Float(i int) (float64, bool) {
	if i < 0 || i >= c.series.NRows() {
		return 0, false
	}
	switch v := c.series.Value(i).(type) {
	case int64:
		return float64(v), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Text returns the display form of the value at row i.
// Returns ("", false) if missing.
func (c *Column) Text(i int) (string, bool) {
	if i < 0 || i >= c.series.NRows() {
		return "", false
	}
	switch v := c.series.Value(i).(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if math.IsNaN(v) {
			return "", false
		}
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return "", false
	}
}

// Key returns the raw value at row i (int64, float64 or string), or nil if missing.
// Keys are comparable and usable as map keys.
func (c *Column) Key(i int) any {
	if i < 0 || i >= c.series.NRows() {
		return nil
	}
	v := c.series.Value(i)
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return nil
	}
	return v
}

// Floats returns the present numeric values in row order.
func (c *Column) Floats() []float64 {
	n := c.series.NRows()
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// Valid returns a bitmap of the rows holding a present value.
func (c *Column) Valid() *Bitmap {
	n := c.series.NRows()
	b := NewBitmap(n)
	for i := 0; i < n; i++ {
		if c.Key(i) != nil {
			b.Set(i)
		}
	}
	return b
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := c.series.NRows()
	return n - c.Valid().Count()
}

// NewInt64Series creates a SeriesInt64; nil entries of present mark missing rows.
func NewInt64Series(name string, data []int64, present []bool) *dataframe.SeriesInt64 {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		if present != nil && !present[i] {
			continue
		}
		vals[i] = v
	}
	return dataframe.NewSeriesInt64(name, nil, vals...)
}

// NewFloat64Series creates a SeriesFloat64; NaN entries are stored as missing.
func NewFloat64Series(name string, data []float64) *dataframe.SeriesFloat64 {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		if math.IsNaN(v) {
			continue
		}
		vals[i] = v
	}
	return dataframe.NewSeriesFloat64(name, nil, vals...)
}

// NewStringSeries creates a SeriesString; nil entries mark missing rows.
func NewStringSeries(name string, data []*string) *dataframe.SeriesString {
	vals := make([]interface{}, len(data))
	for i, v := range data {
		if v != nil {
			vals[i] = *v
		}
	}
	return dataframe.NewSeriesString(name, nil, vals...)
}
