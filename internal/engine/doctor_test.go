package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoctorReportsMissingReadyAndBroken(t *testing.T) {
	t.Parallel()

	missing := newFakeTarget("missing")
	ready := newFakeTarget("ready")
	ready.satisfied = true
	broken := newFakeTarget("broken")
	broken.satisfied = true
	broken.verifyErr = errors.New("service inactive")

	reg := NewRegistry("install")
	for _, f := range []*fakeTarget{missing, ready, broken} {
		require.NoError(t, reg.Register(f.target))
	}

	report := Doctor(&ExecutionContext{}, reg, nil)
	require.Equal(t, "install", report.Domain)
	require.Len(t, report.Entries, 3)

	require.Equal(t, HealthMissing, report.Entries[0].Status)
	require.Equal(t, HealthReady, report.Entries[1].Status)
	require.Equal(t, HealthBroken, report.Entries[2].Status)
	require.Equal(t, "service inactive", report.Entries[2].Reason)
	require.False(t, report.Healthy())
}

func TestDoctorNeverActs(t *testing.T) {
	t.Parallel()

	target := newFakeTarget("a")
	reg := NewRegistry("pull")
	require.NoError(t, reg.Register(target.target))

	Doctor(&ExecutionContext{}, reg, nil)
	require.Zero(t, target.acts)
	require.Equal(t, 1, target.checks)
}

func TestDoctorAttachesInspectDetails(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("pull")
	require.NoError(t, reg.Register(&Target{
		ID:      "data_models",
		Check:   func(*ExecutionContext) bool { return false },
		Act:     func(*ExecutionContext) error { return nil },
		Inspect: func(*ExecutionContext) []string { return []string{"phi3:mini"} },
	}))

	report := Doctor(&ExecutionContext{}, reg, []string{"data_models"})
	require.Len(t, report.Entries, 1)
	require.Equal(t, []string{"phi3:mini"}, report.Entries[0].Missing)

	var buf bytes.Buffer
	report.WriteHuman(&buf)
	require.Contains(t, buf.String(), "data_models: ")
	require.Contains(t, buf.String(), "(missing: phi3:mini)")
}

func TestDoctorJSONKeyedByID(t *testing.T) {
	t.Parallel()

	ready := newFakeTarget("ready")
	ready.satisfied = true
	reg := NewRegistry("create")
	require.NoError(t, reg.Register(ready.target))

	report := Doctor(&ExecutionContext{}, reg, nil)

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf))

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Contains(t, decoded, "ready")
	require.Equal(t, "ready", decoded["ready"]["status"])
}

func TestDoctorSkipsUnknownIDs(t *testing.T) {
	t.Parallel()

	ready := newFakeTarget("known")
	reg := NewRegistry("install")
	require.NoError(t, reg.Register(ready.target))

	report := Doctor(&ExecutionContext{}, reg, []string{"known", "unknown"})
	require.Len(t, report.Entries, 1)
}
