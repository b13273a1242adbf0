package runs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()

	first, err := Start(ws, "install curl")
	require.NoError(t, err)
	second, err := Start(ws, "pull data_models")
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(first.ID, "_001"), first.ID)
	require.True(t, strings.HasSuffix(second.ID, "_002"), second.ID)
	require.DirExists(t, first.Dir)
	require.FileExists(t, first.LogPath())
}

func TestFinishRecordsStatusAndTimestamp(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	run, err := Start(ws, "create engine")
	require.NoError(t, err)
	require.NoError(t, run.Finish("success"))

	data, err := os.ReadFile(filepath.Join(run.Dir, "run.json"))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, run.ID, m["run_id"])
	require.Equal(t, "create engine", m["command"])
	require.Equal(t, "success", m["status"])
	require.NotNil(t, m["finished_at"])
}

func TestStartLeavesMetaRunning(t *testing.T) {
	t.Parallel()

	ws := t.TempDir()
	run, err := Start(ws, "install base")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(run.Dir, "run.json"))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, "running", m["status"])
	require.Nil(t, m["finished_at"])
}
