// Package runs keeps an auditable ledger of engine invocations, one directory
// per run under the workspace runs/ tree.
package runs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Run is one ledger entry. The directory holds run.json metadata and a log
// file for whatever the invocation wants to append.
type Run struct {
	ID  string
	Dir string

	metaPath string
	logPath  string
}

type meta struct {
	RunID      string  `json:"run_id"`
	Command    string  `json:"command"`
	Workspace  string  `json:"workspace"`
	Status     string  `json:"status"`
	StartedAt  string  `json:"started_at"`
	FinishedAt *string `json:"finished_at"`
}

// Start creates a new run directory named run_<date>_<nnn> with the sequence
// number scoped to the current day, and records the invoked command.
func Start(workspace, command string) (*Run, error) {
	root := filepath.Join(workspace, "runs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating runs directory: %w", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	existing, err := filepath.Glob(filepath.Join(root, "run_"+today+"_*"))
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("run_%s_%03d", today, len(existing)+1)

	dir := filepath.Join(root, id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	run := &Run{
		ID:       id,
		Dir:      dir,
		metaPath: filepath.Join(dir, "run.json"),
		logPath:  filepath.Join(dir, "logs.txt"),
	}

	m := meta{
		RunID:     id,
		Command:   command,
		Workspace: workspace,
		Status:    "running",
		StartedAt: nowISO(),
	}
	if err := run.writeMeta(m); err != nil {
		return nil, err
	}
	if err := os.WriteFile(run.logPath, nil, 0o644); err != nil {
		return nil, fmt.Errorf("creating run log: %w", err)
	}
	return run, nil
}

// LogPath returns the run's log file, usable as a logging sink.
func (r *Run) LogPath() string {
	return r.logPath
}

// Finish stamps the run with its terminal status.
func (r *Run) Finish(status string) error {
	data, err := os.ReadFile(r.metaPath)
	if err != nil {
		return fmt.Errorf("reading run metadata: %w", err)
	}
	var m meta
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parsing run metadata: %w", err)
	}

	finished := nowISO()
	m.Status = status
	m.FinishedAt = &finished
	return r.writeMeta(m)
}

func (r *Run) writeMeta(m meta) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.metaPath, data, 0o644); err != nil {
		return fmt.Errorf("writing run metadata: %w", err)
	}
	return nil
}

func nowISO() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}
