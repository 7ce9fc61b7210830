package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumn is the sentinel wrapped by every ColumnError.
var ErrColumn = errors.New("column error")

// Column error reasons.
const (
	ReasonNotFound       = "not found"
	ReasonNotNumeric     = "not numeric"
	ReasonExists         = "already exists"
	ReasonLength         = "length mismatch"
	ReasonEmptyName      = "empty name"
	ReasonUnsupported    = "unsupported series type"
	ReasonRequiredAbsent = "required but absent"
)

// ColumnError reports a referenced column that is absent or has the wrong
// type for the requested operation.
type ColumnError struct {
	Columns []string
	Reason  string
}

func (e *ColumnError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("column %s: %s", quoted[0], e.Reason)
	}
	return fmt.Sprintf("columns %s: %s", strings.Join(quoted, ", "), e.Reason)
}

func (e *ColumnError) Unwrap() error { return ErrColumn }

func columnErr(name, reason string) *ColumnError {
	return &ColumnError{Columns: []string{name}, Reason: reason}
}
