package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/akhildatla/eda/pkg/stats"
	"github.com/akhildatla/eda/pkg/table"
)

var separator = "\n" + strings.Repeat("=", 70) + "\n\n"

// errWriter remembers the first write error so sections can be written
// without checking every call.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}

func (e *errWriter) sep() {
	io.WriteString(e, separator)
}

// WriteText renders r as the console report.
func WriteText(w io.Writer, r *Report) error {
	ew := &errWriter{w: w}
	o := r.Options

	ew.printf("First %d rows of the dataset:\n", len(r.Head))
	grid(ew, r.HeadColumns, r.Head)
	ew.sep()

	ew.printf("Missing values per column:\n")
	rows := make([][]string, len(r.Missing))
	for i, m := range r.Missing {
		rows[i] = []string{m.Column, strconv.Itoa(m.Count)}
	}
	grid(ew, []string{"Column", "Missing"}, rows)
	ew.sep()

	ew.printf("Number of duplicate rows: %d\n", r.Duplicates)
	ew.sep()

	ew.printf("Dataset dimensions:\n")
	ew.printf("Shape (rows, columns): (%d, %d)\n", r.Rows, r.Cols)
	ew.printf("Number of rows: %d\n", r.Rows)
	ew.printf("Number of columns: %d\n", r.Cols)
	ew.sep()

	ew.printf("Data types of columns:\n")
	rows = make([][]string, len(r.Schema))
	for i, c := range r.Schema {
		rows[i] = []string{c.Name, c.Kind.String()}
	}
	grid(ew, []string{"Column", "Type"}, rows)
	ew.sep()

	ew.printf("Column names:\n%s\n", strings.Join(r.HeadColumns, ", "))
	ew.sep()

	ew.printf("Statistical summary:\n")
	writeDescribe(ew, r.Describe)
	ew.sep()

	ew.printf("Distribution of %ss (%s):\n", o.label(o.Target), o.Target)
	writeHistogram(ew, r.Outcome)
	ew.sep()

	if r.Distribution.Column != "" {
		writeCounts(ew, r.Distribution)
		ew.sep()
	}

	for _, g := range r.Groups {
		writeGroups(ew, g)
		ew.sep()
	}

	if len(r.Correlation) > 0 {
		ew.printf("Correlation with %s (%s):\n", o.label(o.Target), o.Target)
		rows = make([][]string, len(r.Correlation))
		for i, c := range r.Correlation {
			rows[i] = []string{c.Column, formatFloat(c.Value, 6)}
		}
		grid(ew, []string{"Column", "Correlation"}, rows)
		ew.sep()
	}

	if len(r.Progression) > 0 {
		ew.printf("Average Grades Across Periods:\n")
		rows = make([][]string, len(r.Progression))
		for i, m := range r.Progression {
			rows[i] = []string{m.Column, formatFloat(m.Mean, 6)}
		}
		grid(ew, []string{"Period", "Mean"}, rows)
		ew.sep()
	}

	writeCounts(ew, r.PassFail)
	ew.printf("\n")
	for _, g := range r.Support {
		writeGroups(ew, g)
		ew.printf("\n")
	}
	if r.AddressCount.Column != "" {
		writeCounts(ew, r.AddressCount)
		ew.printf("\n")
		writeGroups(ew, r.AddressGroup)
	}
	ew.sep()

	writeSummary(ew, o, r.Summary)
	ew.sep()
	return ew.err
}

func grid(w io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetHeader(header)
	tw.AppendBulk(rows)
	tw.Render()
}

func writeDescribe(w *errWriter, summaries []stats.ColumnSummary) {
	header := []string{"Column", "count", "unique", "top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		unique, top, freq := "NaN", "NaN", "NaN"
		if s.Kind == table.KindCategorical {
			unique, top, freq = strconv.Itoa(s.Unique), s.Top, strconv.Itoa(s.Freq)
		}
		rows[i] = []string{
			s.Column,
			strconv.Itoa(s.Count),
			unique,
			top,
			freq,
			formatFloat(s.Mean, 6),
			formatFloat(s.Std, 6),
			formatFloat(s.Min, 6),
			formatFloat(s.Q25, 6),
			formatFloat(s.Median, 6),
			formatFloat(s.Q75, 6),
			formatFloat(s.Max, 6),
		}
	}
	grid(w, header, rows)
}

func writeHistogram(w *errWriter, h Histogram) {
	if len(h.Counts) == 0 {
		w.printf("(no values)\n")
		return
	}
	data := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		data[i] = float64(c)
	}
	caption := fmt.Sprintf("%d bins from %s to %s", len(h.Counts),
		formatFloat(h.Edges[0], 2), formatFloat(h.Edges[len(h.Edges)-1], 2))
	w.printf("%s\n", asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Caption(caption)))
}

func writeCounts(w *errWriter, s CountSection) {
	w.printf("%s:\n", s.Title)
	rows := make([][]string, len(s.Counts))
	for i, c := range s.Counts {
		rows[i] = []string{c.Label, strconv.Itoa(c.Count)}
	}
	grid(w, []string{s.Column, "count"}, rows)
}

func writeGroups(w *errWriter, s GroupSection) {
	w.printf("%s:\n", s.Title)
	rows := make([][]string, len(s.Groups))
	for i, g := range s.Groups {
		rows[i] = []string{g.Label, formatFloat(g.Mean, 6)}
	}
	grid(w, []string{s.Column, "mean"}, rows)
}

func writeSummary(w *errWriter, o Options, s *stats.Summary) {
	target := o.label(o.Target)
	w.printf("SUMMARY STATISTICS:\n")
	w.printf("Total Students: %d\n", s.Count)
	w.printf("Average %s: %s\n", target, formatFloat(s.Mean, 2))
	w.printf("Median %s: %s\n", target, formatFloat(s.Median, 2))
	w.printf("Standard Deviation: %s\n", formatFloat(s.Std, 2))
	w.printf("Pass Rate (Grade >= %s): %s%%\n", strconv.FormatFloat(s.Threshold, 'g', -1, 64), formatFloat(s.PassRate*100, 1))
	for _, m := range s.OtherMeans {
		w.printf("Average %s: %s\n", o.label(m.Column), formatFloat(m.Mean, 2))
	}
}

// formatFloat prints v with prec decimals, or NaN.
func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
