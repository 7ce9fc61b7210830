package stats

import (
	"fmt"

	"github.com/akhildatla/eda/pkg/table"
)

// Label values written by DeriveLabel.
const (
	LabelPass = "pass"
	LabelFail = "fail"

	// DefaultLabelColumn is the name conventionally given to the label.
	DefaultLabelColumn = "pass_fail"
)

// DeriveLabel returns a new Table with a categorical column name appended:
// LabelPass where source is at least threshold, LabelFail where it is
// below, missing where source is missing. t is left unchanged.
func DeriveLabel(t *table.Table, source string, threshold float64, name string) (*table.Table, error) {
	src, err := t.Numeric(source)
	if err != nil {
		return nil, fmt.Errorf("deriveLabel: %w", err)
	}

	pass, fail := LabelPass, LabelFail
	labels := make([]*string, src.Len())
	for i := range labels {
		v, ok := src.Float(i)
		switch {
		case !ok:
		case v >= threshold:
			labels[i] = &pass
		default:
			labels[i] = &fail
		}
	}

	out, err := t.WithColumn(table.NewStringSeries(name, labels))
	if err != nil {
		return nil, fmt.Errorf("deriveLabel: %w", err)
	}
	return out, nil
}
