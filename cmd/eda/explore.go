package main

import (
	"github.com/spf13/cobra"

	"github.com/akhildatla/eda/pkg/repl"
)

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Start the interactive explore shell",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := a.loadOptions()
			if err != nil {
				return err
			}
			sh := repl.New(opts...)
			if len(args) == 1 {
				t, err := a.loadTable(ctx, args[0])
				if err != nil {
					return err
				}
				sh.SetTable(t, args[0])
			}
			return sh.Start(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
