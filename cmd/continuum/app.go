package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/continuum-ml/continuum/internal/logger"
)

const workspaceEnvVar = "CONTINUUM_WORKSPACE"

// resolveWorkspace picks the workspace root from the flag, then
// $CONTINUUM_WORKSPACE, then the current directory.
func resolveWorkspace(flags *rootFlags) (string, error) {
	root := flags.workspace
	if root == "" {
		root = os.Getenv(workspaceEnvVar)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving current directory: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving workspace path: %w", err)
	}
	return abs, nil
}

func newAppLogger(flags *rootFlags) (*logger.Logger, error) {
	level := "info"
	if flags.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true})
}

// terminalConfirmer prompts once for the pending mutating targets. Outside an
// interactive terminal it declines and tells the user about --yes instead of
// blocking on a read that can never be answered.
func terminalConfirmer(in io.Reader, out io.Writer, domain string) func(pending []string) bool {
	return func(pending []string) bool {
		if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
			fmt.Fprintln(out, "stdin is not a terminal; re-run with --yes to confirm")
			return false
		}

		fmt.Fprintf(out, "Proceed with %s of %s? [y/N]: ", domain, strings.Join(pending, ", "))
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
