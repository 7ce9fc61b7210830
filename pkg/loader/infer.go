package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/eda/pkg/table"
)

// toTable normalizes every imported series into an integer, float or
// categorical column and builds the Table.
func toTable(df *dataframe.DataFrame, missing map[string]bool) (*table.Table, error) {
	series := make([]dataframe.Series, 0, len(df.Series))
	for _, s := range df.Series {
		series = append(series, normalizeSeries(s, missing))
	}
	return table.New(series...)
}

func normalizeSeries(s dataframe.Series, missing map[string]bool) dataframe.Series {
	switch ss := s.(type) {
	case *dataframe.SeriesInt64:
		return ss
	case *dataframe.SeriesFloat64:
		return ss
	}
	return inferSeries(s.Name(), rawValues(s), missing)
}

// rawValues returns the cells of s as text; nil marks a missing cell.
func rawValues(s dataframe.Series) []*string {
	n := s.NRows()
	out := make([]*string, n)
	for i := 0; i < n; i++ {
		switch v := s.Value(i).(type) {
		case nil:
		case string:
			out[i] = &v
		case float64:
			if !math.IsNaN(v) {
				str := strconv.FormatFloat(v, 'g', -1, 64)
				out[i] = &str
			}
		default:
			str := fmt.Sprint(v)
			out[i] = &str
		}
	}
	return out
}

// inferSeries types a column of text cells: integer if every present value
// parses as an integer, float if every present value parses as a finite
// number, categorical otherwise. A column with no present value is a float column.
func inferSeries(name string, raw []*string, missing map[string]bool) dataframe.Series {
	cells := make([]*string, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		trimmed := strings.TrimSpace(*v)
		if missing[trimmed] {
			continue
		}
		cells[i] = &trimmed
	}

	if ints, present, ok := parseInts(cells); ok {
		return table.NewInt64Series(name, ints, present)
	}
	if floats, ok := parseFloats(cells); ok {
		return table.NewFloat64Series(name, floats)
	}

	// Categorical keeps the untrimmed text.
	text := make([]*string, len(raw))
	for i := range raw {
		if cells[i] != nil {
			text[i] = raw[i]
		}
	}
	return table.NewStringSeries(name, text)
}

func parseInts(cells []*string) ([]int64, []bool, bool) {
	vals := make([]int64, len(cells))
	present := make([]bool, len(cells))
	seen := 0
	for i, c := range cells {
		if c == nil {
			continue
		}
		v, err := strconv.ParseInt(*c, 10, 64)
		if err != nil {
			return nil, nil, false
		}
		vals[i] = v
		present[i] = true
		seen++
	}
	if seen == 0 {
		return nil, nil, false
	}
	return vals, present, true
}

func parseFloats(cells []*string) ([]float64, bool) {
	vals := make([]float64, len(cells))
	for i, c := range cells {
		if c == nil {
			vals[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(*c, 64)
		if err != nil || math.IsInf(v, 0) {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}
