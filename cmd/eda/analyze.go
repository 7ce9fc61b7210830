package main

import (
	"github.com/spf13/cobra"

	"github.com/akhildatla/eda/pkg/repl"
)

// runShellCommand loads path and runs one explore-shell command on it.
func (a *app) runShellCommand(cmd *cobra.Command, path, name string, args ...string) error {
	ctx := cmd.Context()
	t, err := a.loadTable(ctx, path)
	if err != nil {
		return err
	}
	sh := repl.New()
	sh.SetTable(t, path)
	return sh.Exec(ctx, cmd.OutOrStdout(), name, args...)
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file>",
		Short: "Print descriptive statistics for every column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShellCommand(cmd, args[0], "describe")
		},
	}
}

func newGroupMeanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groupmean <file> <group> [value]",
		Short: "Print the mean of value per group, highest first",
		Long: `groupmean partitions the table by the group column and prints the mean of
the value column within each group. value defaults to the configured target.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := a.cfg.Target
			if len(args) == 3 {
				value = args[2]
			}
			return a.runShellCommand(cmd, args[0], "groupmean", args[1], value)
		},
	}
}

func newCorrCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corr <file> [column...]",
		Short: "Rank columns by correlation with the target",
		Long: `corr computes pairwise-complete Pearson correlations and ranks the columns
by their coefficient with the target. Without columns every numeric column
is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShellCommand(cmd, args[0], "corr", append([]string{a.cfg.Target}, args[1:]...)...)
		},
	}
	cmd.Flags().String("target", "", "column to rank against")
	return cmd
}
