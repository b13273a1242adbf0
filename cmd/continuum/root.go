package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	workspace string
	dryRun    bool
	verbose   bool
	yes       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "continuum",
		Short:         "Continuum provisions machines and workspaces for ML work",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.workspace, "workspace", "w", "", "Path to the workspace (defaults to $CONTINUUM_WORKSPACE or the current directory)")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Preview execution without making changes")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newInstallCmd(flags))
	cmd.AddCommand(newPullCmd(flags))
	cmd.AddCommand(newCreateCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
