// Package state persists the last known outcome of every provisioning target,
// one JSON artifact per domain under the workspace metadata directory.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Result enumerates the terminal outcomes recorded for a target.
type Result string

const (
	ResultSuccess          Result = "success"
	ResultAlreadySatisfied Result = "already_satisfied"
	ResultFailed           Result = "failed"
)

// Record is the persisted outcome of the most recent attempt on a target.
type Record struct {
	LastRun    time.Time `json:"last_run"`
	LastResult Result    `json:"last_result"`
	LastError  *string   `json:"last_error"`
}

// NewRecord stamps a record with the current UTC time. err may be nil.
func NewRecord(result Result, err error) Record {
	rec := Record{
		LastRun:    time.Now().UTC().Truncate(time.Second),
		LastResult: result,
	}
	if err != nil {
		msg := err.Error()
		rec.LastError = &msg
	}
	return rec
}

// Store reads and writes one domain's state artifact. A single orchestration
// invocation per workspace is assumed; there is no cross-process locking.
type Store struct {
	path string
}

// NewStore returns a store for the given domain rooted at the workspace.
func NewStore(workspace, domain string) *Store {
	return &Store{path: filepath.Join(workspace, ".continuum", "state", domain+".json")}
}

// Path returns the location of the state artifact.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state artifact. An absent or unparsable file yields an empty
// map; corrupt state is treated as absent state, never as fatal.
func (s *Store) Load() map[string]Record {
	records := make(map[string]Record)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return records
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return make(map[string]Record)
	}
	return records
}

// Save overwrites the state artifact with the full record map. The write goes
// through a temporary file and rename so readers never observe a partial map.
func (s *Store) Save(records map[string]Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary state file: %w", err)
	}

	return nil
}
