package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akhildatla/eda/internal/config"
	"github.com/akhildatla/eda/internal/logger"
	"github.com/akhildatla/eda/pkg/chart"
	"github.com/akhildatla/eda/pkg/report"
)

func newReportCmd(a *app) *cobra.Command {
	var noCharts bool

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Print the full analysis and render its charts",
		Long: `report loads a student records file and prints, in order: the first rows,
missing values, duplicates, shape, types, descriptive statistics, the final
grade distribution, grouped means, the correlation ranking, the grade
progression, the pass/fail distribution and the summary statistics.

Charts are written as PNG files to --output-dir unless --no-charts is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noCharts {
				a.cfg.Charts = false
			}
			return a.runReport(cmd, args[0])
		},
	}

	f := cmd.Flags()
	f.String("format", "", "output format: text or json")
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.String("output-dir", "", "directory for chart files")
	f.BoolVar(&noCharts, "no-charts", false, "do not render charts")
	f.String("target", "", "outcome column")
	f.Float64("threshold", 0, "inclusive pass mark for the outcome column")
	f.String("label-column", "", "name of the derived pass/fail column")
	f.Int("head", 0, "number of rows in the first-rows section")
	f.Int("bins", 0, "number of outcome histogram bins")
	return cmd
}

func (a *app) runReport(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	log := logger.WithContext(ctx)

	t, err := a.loadTable(ctx, path)
	if err != nil {
		return err
	}

	r, err := report.BuildWithOptions(ctx, t, reportOptions(a.cfg))
	if err != nil {
		return err
	}
	r.Source = path

	// The whole document is rendered before anything is written.
	var buf bytes.Buffer
	switch a.cfg.Format {
	case config.FormatJSON:
		err = report.WriteJSON(&buf, r)
	default:
		err = report.WriteText(&buf, r)
	}
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := writeOutput(cmd.OutOrStdout(), a.cfg.Output, buf.Bytes()); err != nil {
		return err
	}

	if !a.cfg.Charts {
		log.Debug("charts disabled")
		return nil
	}
	files, err := chart.RenderAll(a.cfg.OutputDir, r.Charts())
	if err != nil {
		return err
	}
	log.Info("charts written", zap.String("dir", a.cfg.OutputDir), zap.Strings("files", files))
	return nil
}

// reportOptions maps the configuration onto the student report defaults.
func reportOptions(c *config.Config) report.Options {
	o := report.DefaultOptions()
	if c.Target != o.Target {
		// A custom outcome is shown under its own name.
		o.Target = c.Target
		o.TargetLabel = ""
	}
	o.Threshold = c.Threshold
	o.LabelColumn = c.LabelColumn
	o.HeadRows = c.HeadRows
	o.Bins = c.Bins
	return o
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
