package main

import (
	"github.com/spf13/cobra"

	"github.com/continuum-ml/continuum/internal/domains/install"
)

func newInstallCmd(flags *rootFlags) *cobra.Command {
	return newDomainCmd(flags, "install", "Install system packages and runtimes", install.NewRegistry)
}
