// Package pull registers the model artifact targets: the Ollama models the
// data pipeline depends on and the modelfile assets repository.
package pull

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/continuum-ml/continuum/internal/engine"
	"github.com/continuum-ml/continuum/internal/execx"
	"github.com/continuum-ml/continuum/internal/ollamacli"
)

// DataModels are the Ollama models required by the data pipeline.
var DataModels = []string{
	"goekdenizguelmez/JOSIEFIED-Qwen3",
	"phi3:mini",
}

// AssetsDir is the workspace-relative checkout of the modelfile assets.
const AssetsDir = "external/model_data_1o"

// AssetsRepoURL is the upstream assets repository.
var AssetsRepoURL = "https://github.com/continuum-ml/model-data-1o.git"

const ollamaMissingHint = "ollama not installed. Run: continuum install ollama"

// NewRegistry builds the pull domain registry.
func NewRegistry(client *ollamacli.Client) (*engine.Registry, error) {
	reg := engine.NewRegistry("pull")

	if err := reg.Register(&engine.Target{
		ID:          "model_assets",
		Description: "Modelfile assets repository",
		Check:       checkAssets,
		Act:         cloneAssets,
		Verify:      verifyAssets,
	}); err != nil {
		return nil, err
	}

	if err := reg.Register(&engine.Target{
		ID:          "data_models",
		Description: "Ollama models for the data pipeline",
		Check: func(c *engine.ExecutionContext) bool {
			if !execx.Exists("ollama") {
				return false
			}
			missing, err := client.Missing(c.Ctx(), DataModels)
			return err == nil && len(missing) == 0
		},
		Act: func(c *engine.ExecutionContext) error {
			if !execx.Exists("ollama") {
				return fmt.Errorf("%s", ollamaMissingHint)
			}
			missing, err := client.Missing(c.Ctx(), DataModels)
			if err != nil {
				return err
			}
			for _, model := range missing {
				c.Printf("  pulling %s...\n", model)
				if err := client.Pull(c.Ctx(), model, c.Out); err != nil {
					return err
				}
			}
			return nil
		},
		Verify: func(c *engine.ExecutionContext) error {
			missing, err := client.Missing(c.Ctx(), DataModels)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				return fmt.Errorf("missing models: %s", strings.Join(missing, ", "))
			}
			return nil
		},
		Inspect: func(c *engine.ExecutionContext) []string {
			if !execx.Exists("ollama") {
				return nil
			}
			missing, err := client.Missing(c.Ctx(), DataModels)
			if err != nil {
				return nil
			}
			return missing
		},
	}); err != nil {
		return nil, err
	}

	if err := reg.RegisterBundle("all", "model_assets", "data_models"); err != nil {
		return nil, err
	}

	return reg, nil
}

func assetsPath(c *engine.ExecutionContext) string {
	return filepath.Join(c.Workspace, filepath.FromSlash(AssetsDir))
}

func checkAssets(c *engine.ExecutionContext) bool {
	_, err := git.PlainOpen(assetsPath(c))
	return err == nil
}

func cloneAssets(c *engine.ExecutionContext) error {
	path := assetsPath(c)
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("assets path is not a directory: %s", path)
		}
		if _, err := git.PlainOpen(path); err != nil {
			return fmt.Errorf("assets path exists but is not a git repository: %s", path)
		}
		return nil
	}

	opts := &git.CloneOptions{URL: AssetsRepoURL, Depth: 1}
	if c.Verbose {
		opts.Progress = c.Out
	}
	if _, err := git.PlainClone(path, false, opts); err != nil {
		return fmt.Errorf("cloning assets repository: %w", err)
	}
	return nil
}

func verifyAssets(c *engine.ExecutionContext) error {
	repo, err := git.PlainOpen(assetsPath(c))
	if err != nil {
		return fmt.Errorf("assets checkout unreadable: %w", err)
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return fmt.Errorf("assets checkout has no origin remote: %w", err)
	}
	for _, u := range remote.Config().URLs {
		if u == AssetsRepoURL {
			return nil
		}
	}
	return fmt.Errorf("assets checkout points at an unexpected remote: %s", strings.Join(remote.Config().URLs, ", "))
}
