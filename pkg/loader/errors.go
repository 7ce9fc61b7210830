package loader

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrNotFound = errors.New("input not readable")
	ErrFormat   = errors.New("malformed input")

	ErrEmptyFile     = errors.New("empty file")
	ErrNoHeader      = errors.New("header has a blank column name")
	ErrDuplicateName = errors.New("header repeats a column name")
	ErrEmptyJSON     = errors.New("empty JSON file")
	ErrEmptyParquet  = errors.New("empty Parquet file")

	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

// NotFoundError reports an input path that cannot be opened or read.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() []error { return []error{ErrNotFound, e.Err} }

// FormatError reports malformed or inconsistent input. Line is the 1-based
// input line when known, 0 otherwise.
type FormatError struct {
	Path string
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() []error { return []error{ErrFormat, e.Err} }
