package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/akhildatla/eda/pkg/table"
)

// LoadCSV reads a delimited text file and returns a Table.
//   - First row is header (column names)
//   - Every row must have as many fields as the header
//   - Empty cells and the missing tokens become missing values
//   - Column types are inferred (integer, float, categorical)
func LoadCSV(ctx context.Context, path string, opts ...Option) (*table.Table, error) {
	o := applyOptions(opts)

	file, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer file.Close()

	header, records, err := checkShape(file, o.Delimiter)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
			return nil, fe
		}
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if records == 0 {
		return headerOnly(path, header)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}

	nilValue := ""
	df, err := imports.LoadFromCSV(ctx, file, imports.CSVLoadOptions{
		Comma:    o.Delimiter,
		NilValue: &nilValue,
		// Types are inferred after import so the numeric rule and the
		// missing tokens are applied uniformly.
		InferDataTypes: false,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FormatError{Path: path, Err: err}
	}
	if df == nil || len(df.Series) == 0 {
		return nil, &FormatError{Path: path, Err: ErrEmptyFile}
	}

	t, err := toTable(df, o.missingSet())
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return t, nil
}

// checkShape verifies the header and that every record has the header's
// field count. It returns the header and the number of data records, a
// *FormatError for malformed input and the raw error when the reader fails.
func checkShape(r io.Reader, comma rune) ([]string, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, &FormatError{Err: ErrEmptyFile}
		}
		return nil, 0, asFormatError(err)
	}
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, 0, &FormatError{Line: 1, Err: ErrNoHeader}
		}
		if seen[key] {
			return nil, 0, &FormatError{Line: 1, Err: ErrDuplicateName}
		}
		seen[key] = true
	}

	cr.ReuseRecord = true
	records := 0
	for {
		_, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return header, records, nil
		}
		if err != nil {
			return nil, 0, asFormatError(err)
		}
		records++
	}
}

// headerOnly builds the zero-row table of a file that has no data records.
// Every column is a float column since no value is present.
func headerOnly(path string, header []string) (*table.Table, error) {
	series := make([]dataframe.Series, len(header))
	for i, name := range header {
		series[i] = table.NewFloat64Series(name, nil)
	}
	t, err := table.New(series...)
	if err != nil {
		return nil, &FormatError{Path: path, Line: 1, Err: err}
	}
	return t, nil
}

func asFormatError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &FormatError{Line: pe.Line, Err: pe.Err}
	}
	return err
}
