package report

// GroupChart names a grouped-mean bar chart drawn for one group column.
type GroupChart struct {
	Column string
	File   string
	Title  string
	XLabel string
}

// Options configures which columns feed each section of a report.
type Options struct {
	// Target is the outcome column every grouped mean and the summary
	// describe. TargetLabel is its display name.
	Target      string
	TargetLabel string

	// Threshold is the inclusive pass mark for Target.
	Threshold float64

	// LabelColumn names the derived pass/fail column.
	LabelColumn string

	// HeadRows is the number of rows shown in the first section.
	HeadRows int

	// Bins is the number of outcome histogram bins.
	Bins int

	// GroupColumns are grouped after the distributions, SupportColumns
	// after the pass/fail distribution.
	GroupColumns   []string
	SupportColumns []string

	// CorrelationColumns are correlated with each other and ranked
	// against Target.
	CorrelationColumns []string

	// ProgressionColumns are averaged in order, e.g. one per grading period.
	ProgressionColumns []string

	// SummaryColumns are averaged alongside the summary statistics.
	SummaryColumns []string

	DistributionColumn string // counted by value, in value order
	CountColumn        string // counted by frequency, then grouped
	ScatterColumn      string // plotted against Target

	GroupCharts []GroupChart

	// ColumnLabels maps a column to its display name.
	ColumnLabels map[string]string
}

// Option is a functional option for configuring a report.
type Option func(*Options)

// WithTarget sets the outcome column and its display name.
func WithTarget(column, label string) Option {
	return func(o *Options) {
		o.Target = column
		o.TargetLabel = label
	}
}

// WithThreshold sets the pass mark.
func WithThreshold(v float64) Option {
	return func(o *Options) {
		o.Threshold = v
	}
}

// WithLabelColumn sets the name of the derived pass/fail column.
func WithLabelColumn(name string) Option {
	return func(o *Options) {
		o.LabelColumn = name
	}
}

// WithHeadRows sets the number of rows shown in the first section.
func WithHeadRows(n int) Option {
	return func(o *Options) {
		o.HeadRows = n
	}
}

// WithBins sets the number of outcome histogram bins.
func WithBins(n int) Option {
	return func(o *Options) {
		o.Bins = n
	}
}

// WithGroupColumns replaces the columns of the first grouped-mean block.
func WithGroupColumns(columns ...string) Option {
	return func(o *Options) {
		o.GroupColumns = columns
	}
}

// WithSupportColumns replaces the columns of the second grouped-mean block.
func WithSupportColumns(columns ...string) Option {
	return func(o *Options) {
		o.SupportColumns = columns
	}
}

// WithCorrelationColumns replaces the correlated columns.
func WithCorrelationColumns(columns ...string) Option {
	return func(o *Options) {
		o.CorrelationColumns = columns
	}
}

// DefaultOptions returns the configuration for the student performance
// dataset: final grade G3, pass mark 10.
func DefaultOptions() Options {
	return Options{
		Target:         "G3",
		TargetLabel:    "Final Grade",
		Threshold:      10,
		LabelColumn:    "pass_fail",
		HeadRows:       5,
		Bins:           20,
		GroupColumns:   []string{"sex", "school", "Medu", "studytime", "internet"},
		SupportColumns: []string{"famsup", "schoolsup", "higher"},
		CorrelationColumns: []string{
			"age", "Medu", "Fedu", "traveltime", "studytime",
			"failures", "famrel", "freetime", "goout", "Dalc",
			"Walc", "health", "absences", "G1", "G2", "G3",
		},
		ProgressionColumns: []string{"G1", "G2", "G3"},
		SummaryColumns:     []string{"absences", "studytime"},
		DistributionColumn: "studytime",
		CountColumn:        "address",
		ScatterColumn:      "absences",
		GroupCharts: []GroupChart{
			{
				Column: "Medu",
				File:   "grade_by_mother_education.png",
				Title:  "Average Final Grade by Mother's Education Level",
				XLabel: "Mother's Education (0: none, 1: 4th grade, 2: 9th grade, 3: secondary, 4: higher)",
			},
			{
				Column: "studytime",
				File:   "grade_by_studytime.png",
				Title:  "Average Final Grade by Study Time",
				XLabel: studyTimeAxis,
			},
		},
		ColumnLabels: map[string]string{
			"sex":       "Gender",
			"school":    "School",
			"Medu":      "Mother's Education",
			"studytime": "Study Time",
			"internet":  "Internet Access",
			"famsup":    "Family Support",
			"schoolsup": "School Support",
			"higher":    "Higher Education Aspiration",
			"address":   "Address Type",
			"absences":  "Absences",
			"G1":        "G1 (Period 1)",
			"G2":        "G2 (Period 2)",
			"G3":        "G3 (Final)",
		},
	}
}

const studyTimeAxis = "Study Time (1: <2hrs, 2: 2-5hrs, 3: 5-10hrs, 4: >10hrs)"

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.HeadRows < 0 {
		o.HeadRows = 0
	}
	return o
}

// label returns the display name of column.
func (o *Options) label(column string) string {
	if column == o.Target && o.TargetLabel != "" {
		return o.TargetLabel
	}
	if l, ok := o.ColumnLabels[column]; ok {
		return l
	}
	return column
}

// periodLabel names a progression column. Its column label wins over the
// target label, so the final period reads like the earlier ones.
func (o *Options) periodLabel(column string) string {
	if l, ok := o.ColumnLabels[column]; ok {
		return l
	}
	return o.label(column)
}

// RequiredColumns lists every column the report reads, once each, in the
// order sections first use them.
func (o *Options) RequiredColumns() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(cols ...string) {
		for _, c := range cols {
			if c != "" && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	add(o.Target, o.DistributionColumn)
	add(o.GroupColumns...)
	add(o.CorrelationColumns...)
	add(o.ProgressionColumns...)
	add(o.SupportColumns...)
	add(o.CountColumn)
	add(o.SummaryColumns...)
	add(o.ScatterColumn)
	for _, gc := range o.GroupCharts {
		add(gc.Column)
	}
	return out
}
