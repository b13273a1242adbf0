package install

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/continuum-ml/continuum/internal/engine"
	"github.com/continuum-ml/continuum/internal/execx"
)

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// sudoPrefix returns the command prefix needed to gain root. Root itself
// needs none; otherwise sudo is required.
func sudoPrefix() ([]string, error) {
	if os.Geteuid() == 0 {
		return nil, nil
	}
	if execx.Exists("sudo") {
		return []string{"sudo"}, nil
	}
	return nil, errors.New("sudo not found; run as root or install sudo")
}

// aptUpdate refreshes the package index at most once per invocation; the
// one-shot flag lives on the execution context, not in package state.
func aptUpdate(c *engine.ExecutionContext) error {
	if !c.Once("apt-update") {
		return nil
	}
	prefix, err := sudoPrefix()
	if err != nil {
		return err
	}
	args := append(append([]string(nil), prefix...), "apt-get", "update")
	if err := execx.Run(c.Ctx(), c.Verbose, aptEnv, args[0], args[1:]...); err != nil {
		return aptHint(err)
	}
	return nil
}

func aptInstall(c *engine.ExecutionContext, pkgs ...string) error {
	if err := aptUpdate(c); err != nil {
		return err
	}
	prefix, err := sudoPrefix()
	if err != nil {
		return err
	}
	args := append(append(append([]string(nil), prefix...), "apt-get", "install", "-y"), pkgs...)
	if err := execx.Run(c.Ctx(), c.Verbose, aptEnv, args[0], args[1:]...); err != nil {
		return aptHint(err)
	}
	return nil
}

// aptHint appends actionable advice for the common apt failure modes.
func aptHint(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Could not get lock"), strings.Contains(msg, "dpkg frontend lock"):
		return fmt.Errorf("%w (apt is locked; another apt/dpkg process is running, wait and retry)", err)
	case strings.Contains(strings.ToLower(msg), "permission denied"):
		return fmt.Errorf("%w (permission denied; try running with sudo)", err)
	}
	return err
}

func dpkgInstalled(c *engine.ExecutionContext, pkg string) bool {
	return execx.Probe(c.Ctx(), "dpkg-query", "-W", pkg)
}

// aptTarget builds a target for a single apt package. verifyArgs, when
// non-empty, is a command expected to exit zero once the package works.
func aptTarget(pkg, description string, verifyArgs ...string) *engine.Target {
	t := &engine.Target{
		ID:          pkg,
		Description: description,
		Check: func(c *engine.ExecutionContext) bool {
			return dpkgInstalled(c, pkg)
		},
		Act: func(c *engine.ExecutionContext) error {
			return aptInstall(c, pkg)
		},
	}
	if len(verifyArgs) > 0 {
		t.Verify = func(c *engine.ExecutionContext) error {
			if !execx.Probe(c.Ctx(), verifyArgs[0], verifyArgs[1:]...) {
				return fmt.Errorf("command failed: %s", strings.Join(verifyArgs, " "))
			}
			return nil
		}
	}
	return t
}
