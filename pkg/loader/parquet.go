package loader

import (
	"context"

	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"

	"github.com/akhildatla/eda/pkg/table"
)

// LoadParquet reads a Parquet file and returns a Table.
// Uses the dataframe-go imports package with parquet-go backend.
func LoadParquet(ctx context.Context, path string, opts ...Option) (*table.Table, error) {
	o := applyOptions(opts)

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer fr.Close()

	df, err := imports.LoadFromParquet(ctx, fr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FormatError{Path: path, Err: err}
	}
	if df == nil || len(df.Series) == 0 {
		return nil, &FormatError{Path: path, Err: ErrEmptyParquet}
	}

	t, err := toTable(df, o.missingSet())
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return t, nil
}
