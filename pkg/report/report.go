// Package report composes the exploratory data analysis of a student
// records table into one ordered document.
//
// Build computes every section in memory and fails before producing any
// output if a column is absent, so a failed run never leaves a partial
// report behind. The result is rendered with WriteText or WriteJSON, and
// Charts lists the figures that go with it.
//
//	r, err := report.Build(ctx, t, report.WithThreshold(10))
//	if err != nil {
//	    return err
//	}
//	return report.WriteText(os.Stdout, r)
package report

import (
	"context"
	"fmt"
	"slices"

	"github.com/akhildatla/eda/pkg/chart"
	"github.com/akhildatla/eda/pkg/stats"
	"github.com/akhildatla/eda/pkg/table"
)

// GroupSection is the grouped mean of the target by one column.
type GroupSection struct {
	Column string
	Title  string
	Groups []stats.GroupAggregate
}

// CountSection is a value distribution of one column.
type CountSection struct {
	Column string
	Title  string
	Counts stats.Counts
}

// Histogram is the binned distribution of the target.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// Report holds every section in display order.
type Report struct {
	Options Options
	Source  string

	HeadColumns []string
	Head        [][]string
	Missing     []stats.ColumnCount
	Duplicates  int
	Rows        int
	Cols        int
	Schema      []table.ColumnInfo
	Describe    []stats.ColumnSummary

	Outcome      Histogram
	Distribution CountSection
	Groups       []GroupSection
	Correlation  []stats.Coefficient
	Progression  []stats.ColumnMean
	PassFail     CountSection
	Support      []GroupSection
	AddressCount CountSection
	AddressGroup GroupSection
	Summary      *stats.Summary

	outcomeValues []float64
	scatterX      []float64
	scatterY      []float64
	chartGroups   []GroupSection
}

// Build computes the report of t.
func Build(ctx context.Context, t *table.Table, opts ...Option) (*Report, error) {
	return BuildWithOptions(ctx, t, applyOptions(opts))
}

// BuildWithOptions computes the report of t with a complete Options value.
func BuildWithOptions(ctx context.Context, t *table.Table, o Options) (*Report, error) {
	if err := t.Require(o.RequiredColumns()...); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	if _, err := t.Numeric(o.Target); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	r := &Report{Options: o}
	steps := []func() error{
		func() error { return r.overview(t) },
		func() error { return r.outcome(t) },
		func() error { return r.distribution(t) },
		func() error {
			var err error
			r.Groups, err = r.groupSections(t, o.GroupColumns)
			return err
		},
		func() error { return r.correlation(t) },
		func() error { return r.progression(t) },
		func() error { return r.passFail(t) },
		func() error {
			var err error
			r.Support, err = r.groupSections(t, o.SupportColumns)
			return err
		},
		func() error { return r.address(t) },
		func() error { return r.summary(t) },
		func() error { return r.figures(t) },
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step(); err != nil {
			return nil, fmt.Errorf("build report: %w", err)
		}
	}
	return r, nil
}

func (r *Report) overview(t *table.Table) error {
	r.HeadColumns = t.Names()
	r.Head = t.Head(r.Options.HeadRows)
	r.Missing = stats.MissingReport(t)
	r.Duplicates = stats.DuplicateCount(t)
	r.Rows, r.Cols = t.Shape()
	r.Schema = t.Schema()
	r.Describe = stats.Describe(t)
	return nil
}

func (r *Report) outcome(t *table.Table) error {
	c, err := t.Numeric(r.Options.Target)
	if err != nil {
		return err
	}
	r.outcomeValues = c.Floats()
	r.Outcome.Edges, r.Outcome.Counts = chart.Histogram(r.outcomeValues, r.Options.Bins)
	return nil
}

func (r *Report) distribution(t *table.Table) error {
	col := r.Options.DistributionColumn
	if col == "" {
		return nil
	}
	counts, err := stats.ValueCounts(t, col)
	if err != nil {
		return err
	}
	r.Distribution = CountSection{
		Column: col,
		Title:  fmt.Sprintf("Distribution of %s", r.Options.label(col)),
		Counts: counts.SortedByKey(),
	}
	return nil
}

func (r *Report) groupSection(t *table.Table, col string) (GroupSection, error) {
	groups, err := stats.GroupMean(t, col, r.Options.Target)
	if err != nil {
		return GroupSection{}, err
	}
	return GroupSection{
		Column: col,
		Title:  fmt.Sprintf("Average %s by %s", r.Options.label(r.Options.Target), r.Options.label(col)),
		Groups: groups,
	}, nil
}

func (r *Report) groupSections(t *table.Table, cols []string) ([]GroupSection, error) {
	out := make([]GroupSection, 0, len(cols))
	for _, col := range cols {
		s, err := r.groupSection(t, col)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *Report) correlation(t *table.Table) error {
	if len(r.Options.CorrelationColumns) == 0 {
		return nil
	}
	cols := r.Options.CorrelationColumns
	if !slices.Contains(cols, r.Options.Target) {
		cols = append([]string{r.Options.Target}, cols...)
	}
	m, err := stats.Correlation(t, cols...)
	if err != nil {
		return err
	}
	r.Correlation, err = m.Ranking(r.Options.Target)
	return err
}

func (r *Report) progression(t *table.Table) error {
	var err error
	r.Progression, err = stats.ColumnMeans(t, r.Options.ProgressionColumns...)
	return err
}

func (r *Report) passFail(t *table.Table) error {
	labeled, err := stats.DeriveLabel(t, r.Options.Target, r.Options.Threshold, r.Options.LabelColumn)
	if err != nil {
		return err
	}
	counts, err := stats.ValueCounts(labeled, r.Options.LabelColumn)
	if err != nil {
		return err
	}
	r.PassFail = CountSection{
		Column: r.Options.LabelColumn,
		Title:  "Pass/Fail Distribution",
		Counts: counts,
	}
	return nil
}

func (r *Report) address(t *table.Table) error {
	col := r.Options.CountColumn
	if col == "" {
		return nil
	}
	counts, err := stats.ValueCounts(t, col)
	if err != nil {
		return err
	}
	r.AddressCount = CountSection{
		Column: col,
		Title:  fmt.Sprintf("Students by %s", r.Options.label(col)),
		Counts: counts,
	}
	r.AddressGroup, err = r.groupSection(t, col)
	return err
}

func (r *Report) summary(t *table.Table) error {
	var err error
	r.Summary, err = stats.Summarize(t, r.Options.Target, r.Options.Threshold, r.Options.SummaryColumns...)
	return err
}

// figures keeps the data behind the charts that no section displays.
func (r *Report) figures(t *table.Table) error {
	if col := r.Options.ScatterColumn; col != "" {
		x, err := t.Numeric(col)
		if err != nil {
			return err
		}
		y, err := t.Numeric(r.Options.Target)
		if err != nil {
			return err
		}
		for _, i := range x.Valid().And(y.Valid()).Indices() {
			xv, _ := x.Float(i)
			yv, _ := y.Float(i)
			r.scatterX = append(r.scatterX, xv)
			r.scatterY = append(r.scatterY, yv)
		}
	}
	for _, gc := range r.Options.GroupCharts {
		s, err := r.groupSection(t, gc.Column)
		if err != nil {
			return err
		}
		r.chartGroups = append(r.chartGroups, s)
	}
	return nil
}
