package loader

import (
	"bytes"
	"context"
	"os"

	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/akhildatla/eda/pkg/table"
)

// LoadJSON reads a JSON file containing an array of objects and returns a Table.
// The JSON must be in the format: [{"col1": val1, "col2": val2}, ...]
// Column types are normalized the same way as for CSV input.
func LoadJSON(ctx context.Context, path string, opts ...Option) (*table.Table, error) {
	o := applyOptions(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &FormatError{Path: path, Err: ErrEmptyJSON}
	}

	df, err := imports.LoadFromJSON(ctx, bytes.NewReader(data))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FormatError{Path: path, Err: err}
	}
	if df == nil || len(df.Series) == 0 {
		return nil, &FormatError{Path: path, Err: ErrEmptyJSON}
	}

	t, err := toTable(df, o.missingSet())
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return t, nil
}
