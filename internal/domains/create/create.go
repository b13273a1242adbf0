// Package create registers the derived model targets materialized from
// modelfiles in the workspace assets checkout.
package create

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/continuum-ml/continuum/internal/domains/pull"
	"github.com/continuum-ml/continuum/internal/engine"
	"github.com/continuum-ml/continuum/internal/execx"
	"github.com/continuum-ml/continuum/internal/ollamacli"
)

const (
	jsonModel  = "phi3-mini-json:latest"
	agentModel = "phi3-mini-agent:latest"

	pullHint = "if a base model is missing, run: continuum pull data_models"
)

// NewRegistry builds the create domain registry.
func NewRegistry(client *ollamacli.Client) (*engine.Registry, error) {
	reg := engine.NewRegistry("create")

	targets := []*engine.Target{
		modelTarget(client, "phi3_mini_json", jsonModel, "Create the phi3-mini-json model", jsonModelfile),
		modelTarget(client, "phi3_mini_agent", agentModel, "Create the phi3-mini-agent model", agentModelfile),
	}
	for _, t := range targets {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}

	if err := reg.RegisterBundle("engine", "phi3_mini_json", "phi3_mini_agent"); err != nil {
		return nil, err
	}
	return reg, nil
}

func modelTarget(client *ollamacli.Client, id, model, description string, modelfile func(c *engine.ExecutionContext) (string, error)) *engine.Target {
	return &engine.Target{
		ID:          id,
		Description: description,
		Check: func(c *engine.ExecutionContext) bool {
			return execx.Exists("ollama") && client.Has(c.Ctx(), model)
		},
		Act: func(c *engine.ExecutionContext) error {
			if !execx.Exists("ollama") {
				return fmt.Errorf("ollama not installed. Run: continuum install ollama")
			}
			path, err := modelfile(c)
			if err != nil {
				return err
			}
			if err := execx.Run(c.Ctx(), c.Verbose, nil, "ollama", "create", model, "-f", path); err != nil {
				return fmt.Errorf("%w (%s)", err, pullHint)
			}
			return nil
		},
		Verify: func(c *engine.ExecutionContext) error {
			return client.Show(c.Ctx(), model)
		},
	}
}

func modelsRoot(c *engine.ExecutionContext) string {
	return filepath.Join(c.Workspace, filepath.FromSlash(pull.AssetsDir), "models")
}

func jsonModelfile(c *engine.ExecutionContext) (string, error) {
	path := filepath.Join(modelsRoot(c), "phi3-mini-json", "phi3-json-modelfile")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("modelfile not found: %s (run: continuum pull model_assets)", path)
	}
	return path, nil
}

// agentModelfile searches the agent assets directory for a Modelfile; the
// upstream assets tree does not pin its exact name.
func agentModelfile(c *engine.ExecutionContext) (string, error) {
	base := filepath.Join(modelsRoot(c), "phi3-mini-agent")
	found := findModelfile(base)
	if found == "" {
		return "", fmt.Errorf("no modelfile found under %s (run: continuum pull model_assets)", base)
	}
	return found, nil
}

func findModelfile(base string) string {
	var found string
	filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil || found != "" || d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == "Modelfile" || strings.Contains(strings.ToLower(name), "modelfile") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}
