package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/continuum-ml/continuum/internal/runs"
	"github.com/continuum-ml/continuum/internal/workspace"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace directory layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspace(flags)
			if err != nil {
				return err
			}

			run, err := runs.Start(ws, "init")
			if err != nil {
				return err
			}
			if err := workspace.Init(ws); err != nil {
				if finishErr := run.Finish("failed"); finishErr != nil {
					return fmt.Errorf("%w (finalizing run ledger: %v)", err, finishErr)
				}
				return err
			}
			if err := run.Finish("success"); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[ok] workspace initialized at: %s\n", ws)
			fmt.Fprintf(out, "[run] %s\n", run.ID)
			return nil
		},
	}
}
