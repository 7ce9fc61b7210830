package stats

import (
	"fmt"
	"math"

	"github.com/akhildatla/eda/pkg/table"
)

// ColumnMean is the mean of the present values of one column.
type ColumnMean struct {
	Column string
	Mean   float64
}

// Summary is the headline description of an outcome column.
type Summary struct {
	Column    string
	Count     int // rows in the table
	Mean      float64
	Median    float64
	Std       float64
	Threshold float64
	// PassRate is the share of all rows whose value is at least Threshold.
	// Rows with a missing value count as not passing.
	PassRate   float64
	OtherMeans []ColumnMean
}

// ColumnMeans returns the mean of each named column, in argument order.
func ColumnMeans(t *table.Table, columns ...string) ([]ColumnMean, error) {
	out := make([]ColumnMean, len(columns))
	for i, name := range columns {
		c, err := t.Numeric(name)
		if err != nil {
			return nil, fmt.Errorf("columnMeans: %w", err)
		}
		out[i] = ColumnMean{Column: name, Mean: mean(c.Floats())}
	}
	return out, nil
}

// Summarize describes column and reports the means of others alongside it.
func Summarize(t *table.Table, column string, threshold float64, others ...string) (*Summary, error) {
	c, err := t.Numeric(column)
	if err != nil {
		return nil, fmt.Errorf("summaryStatistics: %w", err)
	}
	otherMeans, err := ColumnMeans(t, others...)
	if err != nil {
		return nil, fmt.Errorf("summaryStatistics: %w", err)
	}

	vals := c.Floats()
	passed := 0
	for _, v := range vals {
		if v >= threshold {
			passed++
		}
	}
	rate := math.NaN()
	if t.NRows() > 0 {
		rate = float64(passed) / float64(t.NRows())
	}

	return &Summary{
		Column:     column,
		Count:      t.NRows(),
		Mean:       mean(vals),
		Median:     median(vals),
		Std:        sampleStd(vals),
		Threshold:  threshold,
		PassRate:   rate,
		OtherMeans: otherMeans,
	}, nil
}
