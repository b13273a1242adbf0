package main

import (
	"github.com/spf13/cobra"

	"github.com/continuum-ml/continuum/internal/domains/pull"
	"github.com/continuum-ml/continuum/internal/engine"
	"github.com/continuum-ml/continuum/internal/ollamacli"
)

func newPullCmd(flags *rootFlags) *cobra.Command {
	return newDomainCmd(flags, "pull", "Pull base models and model assets", func() (*engine.Registry, error) {
		client, err := ollamacli.New()
		if err != nil {
			return nil, err
		}
		return pull.NewRegistry(client)
	})
}
