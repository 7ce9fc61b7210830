package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akhildatla/eda/internal/config"
	"github.com/akhildatla/eda/internal/logger"
	"github.com/akhildatla/eda/pkg/loader"
	"github.com/akhildatla/eda/pkg/table"
)

// app carries the state shared by every command of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "eda",
		Short: "Exploratory data analysis of student records",
		Long: `eda loads a delimited table of student records, reports data quality,
descriptive and grouped statistics, correlations with the final grade and
a pass/fail summary, and renders the accompanying charts.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultFile+")")
	pf.String("delimiter", "", "field delimiter: a single character, or comma, semicolon, tab")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log encoding: console or json")

	root.AddCommand(
		newReportCmd(a),
		newDescribeCmd(a),
		newGroupMeanCmd(a),
		newCorrCmd(a),
		newExploreCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves the configuration, starts the logger and tags the command
// context with a run id.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
		Development: cfg.Log.Development,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.ContextWithRunID(ctx, uuid.NewString())
	ctx = logger.ContextWithCommand(ctx, cmd.Name())
	cmd.SetContext(ctx)

	logger.WithContext(ctx).Debug("configuration loaded",
		zap.String("config_file", a.cfgFile),
		zap.String("delimiter", cfg.Delimiter),
		zap.String("target", cfg.Target),
	)
	return nil
}

// loadTable reads path with the configured delimiter and missing tokens.
func (a *app) loadTable(ctx context.Context, path string) (*table.Table, error) {
	opts, err := a.loadOptions()
	if err != nil {
		return nil, err
	}
	t, err := loader.Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	rows, cols := t.Shape()
	logger.WithContext(ctx).Info("table loaded",
		zap.String("path", path),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
	)
	return t, nil
}

func (a *app) loadOptions() ([]loader.Option, error) {
	delim, err := loader.ParseDelimiter(a.cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	return []loader.Option{
		loader.WithDelimiter(delim),
		loader.WithMissingTokens(a.cfg.MissingTokens...),
	}, nil
}
