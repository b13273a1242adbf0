package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveWorkspacePrecedence(t *testing.T) {
	flagDir := t.TempDir()
	envDir := t.TempDir()
	t.Setenv(workspaceEnvVar, envDir)

	ws, err := resolveWorkspace(&rootFlags{workspace: flagDir})
	require.NoError(t, err)
	require.Equal(t, flagDir, ws)

	ws, err = resolveWorkspace(&rootFlags{})
	require.NoError(t, err)
	require.Equal(t, envDir, ws)

	t.Setenv(workspaceEnvVar, "")
	cwd, err := os.Getwd()
	require.NoError(t, err)
	ws, err = resolveWorkspace(&rootFlags{})
	require.NoError(t, err)
	require.Equal(t, cwd, ws)
}

func TestInitCreatesWorkspaceAndLedgerEntry(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	out, err := execute(t, "init", "--workspace", ws)
	require.NoError(t, err)
	require.Contains(t, out, "[ok] workspace initialized at: "+ws)

	require.DirExists(t, filepath.Join(ws, ".continuum", "state"))
	require.FileExists(t, filepath.Join(ws, "continuum.yaml"))

	entries, err := filepath.Glob(filepath.Join(ws, "runs", "run_*"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.FileExists(t, filepath.Join(entries[0], "run.json"))
}

func TestDomainCommandsRequireInitializedWorkspace(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	_, err := execute(t, "install", "curl", "--workspace", ws, "--yes")
	require.Error(t, err)
	require.Contains(t, err.Error(), "continuum init")
}

func TestInstallListEnumeratesTargetsAndBundles(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "install", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Targets:")
	require.Contains(t, out, "  curl: ")
	require.Contains(t, out, "  ollama: ")
	require.Contains(t, out, "Bundles:")
	require.Contains(t, out, "  full: ")
}

func TestInstallResolveErrorForUnknownTarget(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	_, err := execute(t, "init", "--workspace", ws)
	require.NoError(t, err)

	_, err = execute(t, "install", "no-such-target", "--workspace", ws, "--yes")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown install target")
}

func TestVersionPrintsBuildInfo(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "continuum dev")
}

func TestTerminalConfirmerReadsAnswer(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	confirm := terminalConfirmer(strings.NewReader("y\n"), out, "install")
	require.True(t, confirm([]string{"curl", "git"}))
	require.Contains(t, out.String(), "Proceed with install of curl, git?")

	require.False(t, terminalConfirmer(strings.NewReader("n\n"), &bytes.Buffer{}, "install")([]string{"curl"}))
	require.False(t, terminalConfirmer(strings.NewReader("\n"), &bytes.Buffer{}, "install")([]string{"curl"}), "default answer is no")
}
