// Package loader reads tabular input files into a table.Table.
//
// Delimited text, JSON arrays of objects and Parquet files are imported with
// dataframe-go and then normalized: every column becomes integer, float or
// categorical, and missing cells become nil.
//
//	t, err := loader.Load(ctx, "student-mat.csv", loader.WithDelimiter(';'))
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akhildatla/eda/pkg/table"
)

// Load reads path, choosing the format from its extension: .json and
// .parquet are read as such, anything else as delimited text.
func Load(ctx context.Context, path string, opts ...Option) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(ctx, path, opts...)
	case ".parquet":
		return LoadParquet(ctx, path, opts...)
	default:
		return LoadCSV(ctx, path, opts...)
	}
}

// ParseDelimiter converts a configured delimiter into a rune. The names
// "tab", "comma" and "semicolon" are accepted as well as any single character.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "comma":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	case "semicolon":
		return ';', nil
	}
	r := []rune(s)
	if len(r) != 1 || r[0] == '\r' || r[0] == '\n' || r[0] == '"' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
	}
	return r[0], nil
}
