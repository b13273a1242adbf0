package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/continuum-ml/continuum/internal/engine"
	"github.com/continuum-ml/continuum/internal/runs"
	"github.com/continuum-ml/continuum/internal/state"
	"github.com/continuum-ml/continuum/internal/workspace"
)

// registryBuilder constructs a domain registry. Builders run after the
// workspace .env is loaded so registries that reach external services (such
// as the Ollama API) see the workspace's configuration.
type registryBuilder func() (*engine.Registry, error)

// newDomainCmd builds the shared command shape for the install, pull and
// create domains: apply a target, list targets and bundles, or run doctor.
func newDomainCmd(flags *rootFlags, domain, short string, build registryBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   domain + " <target>",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return applyTarget(cmd, flags, domain, build, args[0])
		},
	}

	cmd.AddCommand(newListCmd(flags, domain, build))
	cmd.AddCommand(newDoctorCmd(flags, domain, build))
	return cmd
}

func applyTarget(cmd *cobra.Command, flags *rootFlags, domain string, build registryBuilder, target string) error {
	ws, err := resolveWorkspace(flags)
	if err != nil {
		return err
	}
	if err := workspace.Ensure(ws); err != nil {
		return err
	}
	if err := workspace.LoadEnv(ws); err != nil {
		return err
	}

	log, err := newAppLogger(flags)
	if err != nil {
		return err
	}

	reg, err := build()
	if err != nil {
		return err
	}
	plan, err := reg.Resolve(target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Will apply %d %s target(s): %s\n", len(plan), domain, strings.Join(plan, ", "))

	ectx := &engine.ExecutionContext{
		Context:     cmd.Context(),
		Workspace:   ws,
		DryRun:      flags.dryRun,
		Verbose:     flags.verbose,
		AutoConfirm: flags.yes,
		Log:         log,
		Out:         out,
		Confirm:     terminalConfirmer(cmd.InOrStdin(), out, domain),
	}

	var run *runs.Run
	if !flags.dryRun {
		run, err = runs.Start(ws, domain+" "+target)
		if err != nil {
			log.Error(err, "recording run ledger entry")
		}
	}

	execErr := engine.NewExecutor(reg, state.NewStore(ws, domain)).Run(ectx, plan)

	if run != nil {
		status := "success"
		switch {
		case errors.Is(execErr, engine.ErrConfirmationDeclined):
			status = "aborted"
		case execErr != nil:
			status = "failed"
		}
		if err := run.Finish(status); err != nil {
			log.Error(err, "finalizing run ledger entry")
		}
	}
	return execErr
}

func newListCmd(flags *rootFlags, domain string, build registryBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + domain + " targets and bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := build()
			if err != nil {
				return err
			}
			renderTargetList(cmd.OutOrStdout(), reg)
			return nil
		},
	}
}

func renderTargetList(w io.Writer, reg *engine.Registry) {
	fmt.Fprintln(w, "Targets:")
	for _, t := range reg.Targets() {
		fmt.Fprintf(w, "  %s: %s\n", t.ID, t.Description)
	}

	bundles := reg.Bundles()
	if len(bundles) == 0 {
		return
	}
	fmt.Fprintln(w, "Bundles:")
	for _, b := range bundles {
		fmt.Fprintf(w, "  %s: %s\n", b.ID, strings.Join(b.Members, ", "))
	}
}

func newDoctorCmd(flags *rootFlags, domain string, build registryBuilder) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report " + domain + " target health without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspace(flags)
			if err != nil {
				return err
			}
			if err := workspace.Ensure(ws); err != nil {
				return err
			}
			if err := workspace.LoadEnv(ws); err != nil {
				return err
			}

			reg, err := build()
			if err != nil {
				return err
			}

			ectx := &engine.ExecutionContext{
				Context:   cmd.Context(),
				Workspace: ws,
				Verbose:   flags.verbose,
				Out:       cmd.OutOrStdout(),
			}
			report := engine.Doctor(ectx, reg, nil)

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout())
			}
			report.WriteHuman(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")
	return cmd
}
