// Package install registers the system package targets: apt packages, the
// node runtime and the ollama model runner, plus the bundles that group them.
package install

import (
	"fmt"

	"github.com/continuum-ml/continuum/internal/engine"
	"github.com/continuum-ml/continuum/internal/execx"
)

const ollamaInstallScript = "curl -fsSL https://ollama.com/install.sh | sh"

var basePackages = []*engine.Target{
	aptTarget("curl", "Command-line HTTP client", "curl", "--version"),
	aptTarget("git", "Git version control", "git", "--version"),
	aptTarget("ca-certificates", "CA certificates"),
	aptTarget("unzip", "Zip extraction utility", "unzip", "-v"),
	aptTarget("build-essential", "Build tools"),
	aptTarget("python3", "Python 3", "python3", "--version"),
	aptTarget("python3-venv", "Python venv support"),
	aptTarget("python3-pip", "Python package installer", "pip3", "--version"),
}

// NewRegistry builds the install domain registry.
func NewRegistry() (*engine.Registry, error) {
	reg := engine.NewRegistry("install")

	baseIDs := make([]string, 0, len(basePackages))
	for _, t := range basePackages {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
		baseIDs = append(baseIDs, t.ID)
	}

	// Distro nodejs package for stability on servers.
	if err := reg.Register(&engine.Target{
		ID:          "node",
		Description: "Node.js runtime",
		Check: func(c *engine.ExecutionContext) bool {
			return dpkgInstalled(c, "nodejs")
		},
		Act: func(c *engine.ExecutionContext) error {
			return aptInstall(c, "nodejs")
		},
		Verify: func(c *engine.ExecutionContext) error {
			if !execx.Probe(c.Ctx(), "node", "--version") {
				return fmt.Errorf("command failed: node --version")
			}
			return nil
		},
	}); err != nil {
		return nil, err
	}

	if err := reg.Register(&engine.Target{
		ID:          "ollama",
		Description: "Ollama local model runner",
		DependsOn:   []string{"curl", "ca-certificates"},
		Check: func(c *engine.ExecutionContext) bool {
			return execx.Exists("ollama")
		},
		Act:     installOllama,
		Verify:  verifyOllama,
		Inspect: inspectOllama,
	}); err != nil {
		return nil, err
	}

	for _, bundle := range []struct {
		id      string
		members []string
	}{
		{"base", baseIDs},
		{"web", []string{"node"}},
		{"ai", []string{"ollama"}},
		{"full", []string{"base", "web", "ai"}},
	} {
		if err := reg.RegisterBundle(bundle.id, bundle.members...); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func installOllama(c *engine.ExecutionContext) error {
	prefix, err := sudoPrefix()
	if err != nil {
		return err
	}
	script := append(append([]string(nil), prefix...), "sh", "-c", ollamaInstallScript)
	if err := execx.Run(c.Ctx(), c.Verbose, nil, script[0], script[1:]...); err != nil {
		return err
	}
	enable := append(append([]string(nil), prefix...), "systemctl", "enable", "--now", "ollama")
	return execx.Run(c.Ctx(), c.Verbose, nil, enable[0], enable[1:]...)
}

func verifyOllama(c *engine.ExecutionContext) error {
	if !execx.Probe(c.Ctx(), "ollama", "--version") {
		return fmt.Errorf("command failed: ollama --version")
	}
	return nil
}

// inspectOllama surfaces a stopped service in doctor output even when the
// binary itself is present and healthy.
func inspectOllama(c *engine.ExecutionContext) []string {
	if !execx.Exists("ollama") || !execx.Exists("systemctl") {
		return nil
	}
	if !execx.Probe(c.Ctx(), "systemctl", "is-active", "ollama") {
		return []string{"ollama.service (inactive)"}
	}
	return nil
}
