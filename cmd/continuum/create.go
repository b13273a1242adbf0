package main

import (
	"github.com/spf13/cobra"

	"github.com/continuum-ml/continuum/internal/domains/create"
	"github.com/continuum-ml/continuum/internal/engine"
	"github.com/continuum-ml/continuum/internal/ollamacli"
)

func newCreateCmd(flags *rootFlags) *cobra.Command {
	return newDomainCmd(flags, "create", "Create derived models from workspace modelfiles", func() (*engine.Registry, error) {
		client, err := ollamacli.New()
		if err != nil {
			return nil, err
		}
		return create.NewRegistry(client)
	})
}
