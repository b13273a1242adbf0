package install

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryDeclaresExpectedTargets(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry()
	require.NoError(t, err)

	for _, id := range []string{"curl", "git", "ca-certificates", "unzip", "build-essential", "python3", "python3-venv", "python3-pip", "node", "ollama"} {
		_, ok := reg.Target(id)
		require.True(t, ok, id)
	}
}

func TestFullBundleResolvesEveryTarget(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry()
	require.NoError(t, err)

	plan, err := reg.Resolve("full")
	require.NoError(t, err)
	require.Len(t, plan, len(reg.Targets()))
	require.Equal(t, "curl", plan[0])
	require.Equal(t, "ollama", plan[len(plan)-1], "ollama depends on base packages and resolves last")
}

func TestOllamaDependsOnTransport(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry()
	require.NoError(t, err)

	plan, err := reg.Resolve("ollama")
	require.NoError(t, err)
	require.Equal(t, []string{"curl", "ca-certificates", "ollama"}, plan)
}

func TestAptHintTranslatesKnownFailures(t *testing.T) {
	t.Parallel()

	locked := aptHint(errors.New("E: Could not get lock /var/lib/dpkg/lock-frontend"))
	require.Contains(t, locked.Error(), "apt is locked")

	denied := aptHint(errors.New("mkdir /var/cache: Permission denied"))
	require.Contains(t, denied.Error(), "try running with sudo")

	plain := errors.New("no space left on device")
	require.Equal(t, plain, aptHint(plain))
}

func TestBundlesCoverDeclaredGroups(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry()
	require.NoError(t, err)

	bundles := reg.Bundles()
	ids := make([]string, 0, len(bundles))
	for _, b := range bundles {
		ids = append(ids, b.ID)
	}
	require.Equal(t, []string{"base", "web", "ai", "full"}, ids)

	members, ok := reg.Bundle("full")
	require.True(t, ok)
	require.Equal(t, []string{"base", "web", "ai"}, members)
}
