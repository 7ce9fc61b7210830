package table

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Kind is the inferred type of a column.
type Kind uint8

const (
	KindInteger Kind = iota
	KindFloat
	KindCategorical
	KindUnknown
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int64"
	case KindFloat:
		return "float64"
	case KindCategorical:
		return "object"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind holds numbers.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// kindOf returns the Kind for a dataframe-go Series.
func kindOf(s dataframe.Series) Kind {
	switch s.(type) {
	case *dataframe.SeriesInt64:
		return KindInteger
	case *dataframe.SeriesFloat64:
		return KindFloat
	case *dataframe.SeriesString:
		return KindCategorical
	default:
		return KindUnknown
	}
}
