package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HealthStatus is the doctor's verdict on a single target.
type HealthStatus string

const (
	// HealthMissing means the target's check is false.
	HealthMissing HealthStatus = "missing"
	// HealthReady means check passed and verify succeeded.
	HealthReady HealthStatus = "ready"
	// HealthBroken means check passed but verify failed.
	HealthBroken HealthStatus = "broken"
)

// Color returns the lipgloss color used when rendering the status.
func (s HealthStatus) Color() lipgloss.Color {
	switch s {
	case HealthReady:
		return lipgloss.Color("42") // green
	case HealthMissing:
		return lipgloss.Color("226") // yellow
	case HealthBroken:
		return lipgloss.Color("196") // red
	default:
		return lipgloss.Color("250") // light gray
	}
}

// HealthEntry is the doctor outcome for one target.
type HealthEntry struct {
	ID      string       `json:"-"`
	Status  HealthStatus `json:"status"`
	Reason  string       `json:"reason,omitempty"`
	Missing []string     `json:"missing,omitempty"`
}

// HealthReport is an ordered doctor sweep over one domain's targets.
type HealthReport struct {
	Domain  string
	Entries []HealthEntry
}

// Doctor re-evaluates check/verify for the given ids without dependency
// expansion and without touching the state store. A nil id list sweeps every
// registered target in declaration order. Doctor never calls Act; it is safe
// to run at any time.
func Doctor(c *ExecutionContext, registry *Registry, ids []string) *HealthReport {
	if ids == nil {
		for _, t := range registry.Targets() {
			ids = append(ids, t.ID)
		}
	}

	report := &HealthReport{Domain: registry.Domain()}
	for _, id := range ids {
		target, ok := registry.Target(id)
		if !ok {
			continue
		}

		entry := HealthEntry{ID: id, Status: HealthMissing}
		if target.Check(c) {
			entry.Status = HealthReady
			if target.Verify != nil {
				if err := target.Verify(c); err != nil {
					entry.Status = HealthBroken
					entry.Reason = err.Error()
				}
			}
		}
		if target.Inspect != nil {
			entry.Missing = target.Inspect(c)
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}

// Healthy reports whether every entry is ready.
func (r *HealthReport) Healthy() bool {
	for _, entry := range r.Entries {
		if entry.Status != HealthReady {
			return false
		}
	}
	return true
}

// WriteHuman renders the line-oriented report.
func (r *HealthReport) WriteHuman(w io.Writer) {
	fmt.Fprintf(w, "%s targets:\n", r.Domain)
	for _, entry := range r.Entries {
		status := lipgloss.NewStyle().Foreground(entry.Status.Color()).Render(string(entry.Status))
		line := fmt.Sprintf("  %s: %s", entry.ID, status)
		if entry.Status == HealthBroken && entry.Reason != "" {
			line += fmt.Sprintf(" (%s)", entry.Reason)
		}
		if len(entry.Missing) > 0 {
			line += fmt.Sprintf(" (missing: %s)", strings.Join(entry.Missing, ", "))
		}
		fmt.Fprintln(w, line)
	}
}

// WriteJSON renders the report as an object keyed by target id.
func (r *HealthReport) WriteJSON(w io.Writer) error {
	keyed := make(map[string]HealthEntry, len(r.Entries))
	for _, entry := range r.Entries {
		keyed[entry.ID] = entry
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(keyed)
}
