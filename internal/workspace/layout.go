// Package workspace manages the on-disk layout of a Continuum workspace and
// its configuration document.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the workspace configuration document at the root.
const ConfigFileName = "continuum.yaml"

// MetaDirName marks an initialized workspace and holds engine metadata.
const MetaDirName = ".continuum"

var layoutDirs = []string{
	"data/raw",
	"datasets",
	"runs",
	"models/checkpoints",
	"models/exports",
	"cache",
	"logs",
	filepath.Join(MetaDirName, "state"),
}

const defaultConfig = `# Continuum workspace config
workspace_name: "continuum-workspace"

stages:
  stage1_raw_dir: "datasets/stage1_raw"
  stage2_curated_dir: "datasets/stage2_curated"
  stage3_annotated_dir: "datasets/stage3_annotated"
`

// Init creates the workspace directory tree and a default configuration
// document. It is idempotent: existing directories and an existing config
// file are left untouched.
func Init(root string) error {
	for _, dir := range layoutDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return fmt.Errorf("creating workspace directory %s: %w", dir, err)
		}
	}

	cfgPath := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return nil
	}
	if err := os.WriteFile(cfgPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Ensure verifies that root is an initialized workspace.
func Ensure(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("workspace path does not exist: %s", root)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace path is not a directory: %s", root)
	}
	if _, err := os.Stat(filepath.Join(root, MetaDirName)); err != nil {
		return fmt.Errorf("not a continuum workspace (run `continuum init`): %s", root)
	}
	return nil
}
