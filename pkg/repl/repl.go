// Package repl implements the interactive explore shell: load a table once,
// then run summaries against it one command at a time.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/akhildatla/eda/pkg/loader"
	"github.com/akhildatla/eda/pkg/stats"
	"github.com/akhildatla/eda/pkg/table"
)

const prompt = "eda> "

// DefaultThreshold is the pass mark used by label and summary when none is given.
const DefaultThreshold = 10

var errNoTable = errors.New("no table loaded, use: load <path> [delimiter]")

// REPL provides an interactive Read-Eval-Print Loop.
type REPL struct {
	table    *table.Table
	source   string
	loadOpts []loader.Option
	history  []string
}

// New creates a new REPL instance. opts apply to every load command.
func New(opts ...loader.Option) *REPL {
	return &REPL{loadOpts: opts}
}

// SetTable makes t the current table.
func (r *REPL) SetTable(t *table.Table, source string) {
	r.table = t
	r.source = source
}

// Table returns the current table, or nil.
func (r *REPL) Table() *table.Table {
	return r.table
}

// Start reads commands from in until quit or end of input.
func (r *REPL) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "eda explore - tabular summaries")
	fmt.Fprintln(out, "Type 'help' for available commands, 'quit' to exit")
	fmt.Fprintln(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if quit := r.handleCommand(ctx, scanner.Text(), out); quit {
			return nil
		}
	}
}

// handleCommand runs one line and reports whether the shell should exit.
func (r *REPL) handleCommand(ctx context.Context, line string, out io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Goodbye!")
		return true
	case "help", "h", "?":
		r.printHelp(out)
		return false
	case "history":
		for i, cmd := range r.history {
			fmt.Fprintf(out, "%3d: %s\n", i+1, cmd)
		}
		return false
	}

	r.history = append(r.history, strings.TrimSpace(line))
	if err := r.eval(ctx, parts[0], parts[1:], out); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return false
}

// Exec runs a single command against the current table and returns its
// error instead of printing it. Shell-only commands are not accepted.
func (r *REPL) Exec(ctx context.Context, out io.Writer, cmd string, args ...string) error {
	return r.eval(ctx, cmd, args, out)
}

func (r *REPL) eval(ctx context.Context, cmd string, args []string, out io.Writer) error {
	if cmd == "load" {
		return r.load(ctx, args, out)
	}
	fn, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	if r.table == nil {
		return errNoTable
	}
	return fn(r, args, out)
}

var commands = map[string]func(*REPL, []string, io.Writer) error{
	"shape":     (*REPL).shape,
	"types":     (*REPL).types,
	"head":      (*REPL).head,
	"missing":   (*REPL).missing,
	"dups":      (*REPL).dups,
	"describe":  (*REPL).describe,
	"groupmean": (*REPL).groupMean,
	"counts":    (*REPL).counts,
	"corr":      (*REPL).corr,
	"label":     (*REPL).label,
	"summary":   (*REPL).summary,
}

func (r *REPL) load(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("usage: load <path> [delimiter]")
	}
	opts := append([]loader.Option(nil), r.loadOpts...)
	if len(args) == 2 {
		d, err := loader.ParseDelimiter(args[1])
		if err != nil {
			return err
		}
		opts = append(opts, loader.WithDelimiter(d))
	}
	t, err := loader.Load(ctx, args[0], opts...)
	if err != nil {
		return err
	}
	r.SetTable(t, args[0])
	rows, cols := t.Shape()
	fmt.Fprintf(out, "Loaded %s (%d rows, %d columns)\n", args[0], rows, cols)
	return nil
}

func (r *REPL) shape(_ []string, out io.Writer) error {
	rows, cols := r.table.Shape()
	fmt.Fprintf(out, "(%d, %d)\n", rows, cols)
	return nil
}

func (r *REPL) types(_ []string, out io.Writer) error {
	var rows [][]string
	for _, c := range r.table.Schema() {
		rows = append(rows, []string{c.Name, c.Kind.String()})
	}
	grid(out, []string{"column", "type"}, rows)
	return nil
}

func (r *REPL) head(args []string, out io.Writer) error {
	n := 5
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("head: invalid row count %q", args[0])
		}
		n = v
	}
	grid(out, r.table.Names(), r.table.Head(n))
	return nil
}

func (r *REPL) missing(_ []string, out io.Writer) error {
	var rows [][]string
	for _, m := range stats.MissingReport(r.table) {
		rows = append(rows, []string{m.Column, strconv.Itoa(m.Count)})
	}
	grid(out, []string{"column", "missing"}, rows)
	return nil
}

func (r *REPL) dups(_ []string, out io.Writer) error {
	fmt.Fprintf(out, "%d duplicate rows\n", stats.DuplicateCount(r.table))
	return nil
}

func (r *REPL) describe(_ []string, out io.Writer) error {
	var rows [][]string
	for _, s := range stats.Describe(r.table) {
		if s.Kind.Numeric() {
			rows = append(rows, []string{s.Column, strconv.Itoa(s.Count), num(s.Mean), num(s.Std), num(s.Min), num(s.Median), num(s.Max), "", ""})
		} else {
			rows = append(rows, []string{s.Column, strconv.Itoa(s.Count), "", "", "", "", "", s.Top, strconv.Itoa(s.Freq)})
		}
	}
	grid(out, []string{"column", "count", "mean", "std", "min", "50%", "max", "top", "freq"}, rows)
	return nil
}

func (r *REPL) groupMean(args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("usage: groupmean <group column> <value column>")
	}
	groups, err := stats.GroupMean(r.table, args[0], args[1])
	if err != nil {
		return err
	}
	var rows [][]string
	for _, g := range groups {
		rows = append(rows, []string{g.Label, num(g.Mean), strconv.Itoa(g.Count)})
	}
	grid(out, []string{args[0], "mean", "n"}, rows)
	return nil
}

func (r *REPL) counts(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: counts <column>")
	}
	counts, err := stats.ValueCounts(r.table, args[0])
	if err != nil {
		return err
	}
	var rows [][]string
	for _, c := range counts {
		rows = append(rows, []string{c.Label, strconv.Itoa(c.Count)})
	}
	grid(out, []string{args[0], "count"}, rows)
	fmt.Fprintf(out, "%d of %d rows\n", counts.Total(), r.table.NRows())
	return nil
}

// corr ranks columns by correlation with a target. Without explicit
// columns every numeric column is used.
func (r *REPL) corr(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: corr <target> [column...]")
	}
	target := args[0]
	cols := args[1:]
	if len(cols) == 0 {
		for _, c := range r.table.Schema() {
			if c.Kind.Numeric() {
				cols = append(cols, c.Name)
			}
		}
	}
	if !contains(cols, target) {
		cols = append([]string{target}, cols...)
	}
	m, err := stats.Correlation(r.table, cols...)
	if err != nil {
		return err
	}
	ranking, err := m.Ranking(target)
	if err != nil {
		return err
	}
	var rows [][]string
	for _, c := range ranking {
		rows = append(rows, []string{c.Column, num(c.Value)})
	}
	grid(out, []string{"column", "r"}, rows)
	return nil
}

// label derives a pass/fail column and makes the result the current table.
func (r *REPL) label(args []string, out io.Writer) error {
	if len(args) == 0 || len(args) > 3 {
		return errors.New("usage: label <source> [threshold] [name]")
	}
	threshold, err := thresholdArg(args, 1)
	if err != nil {
		return err
	}
	name := stats.DefaultLabelColumn
	if len(args) == 3 {
		name = args[2]
	}
	labeled, err := stats.DeriveLabel(r.table, args[0], threshold, name)
	if err != nil {
		return err
	}
	r.table = labeled
	fmt.Fprintf(out, "Added column %s (%s >= %s)\n", name, args[0], strconv.FormatFloat(threshold, 'g', -1, 64))
	return nil
}

func (r *REPL) summary(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: summary <column> [threshold] [column...]")
	}
	threshold, err := thresholdArg(args, 1)
	if err != nil {
		return err
	}
	var others []string
	if len(args) > 2 {
		others = args[2:]
	}
	s, err := stats.Summarize(r.table, args[0], threshold, others...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "count:     %d\n", s.Count)
	fmt.Fprintf(out, "mean:      %s\n", num(s.Mean))
	fmt.Fprintf(out, "median:    %s\n", num(s.Median))
	fmt.Fprintf(out, "std:       %s\n", num(s.Std))
	fmt.Fprintf(out, "pass rate: %s\n", num(s.PassRate))
	for _, m := range s.OtherMeans {
		fmt.Fprintf(out, "mean %s: %s\n", m.Column, num(m.Mean))
	}
	return nil
}

func thresholdArg(args []string, i int) (float64, error) {
	if len(args) <= i {
		return DefaultThreshold, nil
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid threshold %q", args[i])
	}
	return v, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func grid(out io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(out)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(header)
	tw.AppendBulk(rows)
	tw.Render()
}

func (r *REPL) printHelp(out io.Writer) {
	help := `
Commands:
  help, h, ?                              Show this help message
  quit, exit, q                           Exit the shell
  load <path> [delimiter]                 Load a CSV, JSON or Parquet file
  shape                                   Rows and columns
  types                                   Column types
  head [n]                                First n rows (default 5)
  missing                                 Missing values per column
  dups                                    Number of duplicate rows
  describe                                Descriptive statistics
  groupmean <group> <value>               Mean of value per group, highest first
  counts <column>                         Value counts, most frequent first
  corr <target> [column...]               Correlation ranking against target
  label <source> [threshold] [name]       Add a pass/fail column
  summary <column> [threshold] [col...]   Summary statistics
  history                                 Show command history

Example:
  load student-mat.csv ;
  groupmean sex G3
  corr G3
`
	fmt.Fprint(out, help)
}
