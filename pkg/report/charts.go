package report

import (
	"fmt"

	"github.com/akhildatla/eda/pkg/chart"
	"github.com/akhildatla/eda/pkg/stats"
)

// Chart file names that do not depend on the configured columns.
const (
	FileOutcome     = "final_grade_distribution.png"
	FileDistrib     = "studytime_distribution.png"
	FileScatter     = "absences_vs_grade.png"
	FileProgression = "grade_progression.png"
)

// Charts returns the figures of r in display order.
func (r *Report) Charts() []chart.Spec {
	o := r.Options
	target := o.label(o.Target)

	specs := []chart.Spec{{
		File:   FileOutcome,
		Kind:   chart.KindHistogram,
		Title:  fmt.Sprintf("Distribution of %ss (%s)", target, o.Target),
		XLabel: target,
		YLabel: "Frequency",
		X:      r.outcomeValues,
		Bins:   o.Bins,
	}}

	if len(r.Distribution.Counts) > 0 {
		labels, ys := countSeries(r.Distribution.Counts)
		specs = append(specs, chart.Spec{
			File:   FileDistrib,
			Kind:   chart.KindBar,
			Title:  r.Distribution.Title,
			XLabel: axisLabel(o, r.Distribution.Column),
			YLabel: "Number of Students",
			Labels: labels,
			Y:      ys,
		})
	}

	for i, gc := range o.GroupCharts {
		labels, ys := groupSeries(r.chartGroups[i])
		specs = append(specs, chart.Spec{
			File:   gc.File,
			Kind:   chart.KindBar,
			Title:  gc.Title,
			XLabel: gc.XLabel,
			YLabel: "Average " + target,
			Labels: labels,
			Y:      ys,
		})
	}

	if o.ScatterColumn != "" {
		specs = append(specs, chart.Spec{
			File:   FileScatter,
			Kind:   chart.KindScatter,
			Title:  fmt.Sprintf("%s vs %s", o.label(o.ScatterColumn), target),
			XLabel: "Number of " + o.label(o.ScatterColumn),
			YLabel: target,
			X:      r.scatterX,
			Y:      r.scatterY,
		})
	}

	if len(r.Progression) > 0 {
		labels := make([]string, len(r.Progression))
		ys := make([]float64, len(r.Progression))
		for i, m := range r.Progression {
			labels[i] = o.periodLabel(m.Column)
			ys[i] = m.Mean
		}
		specs = append(specs, chart.Spec{
			File:   FileProgression,
			Kind:   chart.KindLine,
			Title:  "Average Grade Progression",
			XLabel: "Period",
			YLabel: "Average Grade",
			Labels: labels,
			Y:      ys,
		})
	}
	return specs
}

func axisLabel(o Options, column string) string {
	if column == "studytime" {
		return studyTimeAxis
	}
	return o.label(column)
}

func countSeries(counts []stats.ValueCount) ([]string, []float64) {
	labels := make([]string, len(counts))
	ys := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		ys[i] = float64(c.Count)
	}
	return labels, ys
}

func groupSeries(s GroupSection) ([]string, []float64) {
	labels := make([]string, len(s.Groups))
	ys := make([]float64, len(s.Groups))
	for i, g := range s.Groups {
		labels[i] = g.Label
		ys[i] = g.Mean
	}
	return labels, ys
}
