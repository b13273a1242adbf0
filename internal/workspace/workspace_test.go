package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	continuumerrors "github.com/continuum-ml/continuum/pkg/errors"
)

func TestInitCreatesLayoutAndDefaultConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, Init(root))

	for _, dir := range []string{"data/raw", "datasets", "runs", "models/checkpoints", "models/exports", "cache", "logs", ".continuum/state"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err, dir)
		require.True(t, info.IsDir())
	}

	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	require.Equal(t, "continuum-workspace", cfg.WorkspaceName)
	require.Equal(t, "datasets/stage1_raw", cfg.Stages.Stage1RawDir)
}

func TestInitPreservesExistingConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	custom := []byte("workspace_name: \"custom\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), custom, 0o644))

	require.NoError(t, Init(root))

	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	require.Equal(t, "custom", cfg.WorkspaceName)
}

func TestEnsureRejectsUninitializedPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.Error(t, Ensure(filepath.Join(root, "nope")))
	require.Error(t, Ensure(root), "missing .continuum marker")

	require.NoError(t, Init(root))
	require.NoError(t, Ensure(root))
}

func TestLoadConfigRejectsMissingName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("stages: {}\n"), 0o644))

	_, err := LoadConfig(root)
	var validationErr *continuumerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLoadConfigReportsParseErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("workspace_name: [\n"), 0o644))

	_, err := LoadConfig(root)
	var parseErr *continuumerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadEnvAppliesDotEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("CONTINUUM_TEST_ENV=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CONTINUUM_TEST_ENV") })

	require.NoError(t, LoadEnv(root))
	require.Equal(t, "from-dotenv", os.Getenv("CONTINUUM_TEST_ENV"))
}

func TestLoadEnvIgnoresMissingFile(t *testing.T) {
	t.Parallel()

	require.NoError(t, LoadEnv(t.TempDir()))
}
