// Package engine implements the target orchestration shared by the install,
// pull and create domains: a registry of idempotent targets and bundles, a
// dependency resolver, a sequential check/act/verify executor and a read-only
// doctor sweep.
package engine

import (
	"fmt"

	continuumerrors "github.com/continuum-ml/continuum/pkg/errors"
)

// Target is one atomic, idempotent provisioning unit.
//
// Check is read-only and answers "is this already satisfied?". Act performs
// the mutating operation. Verify re-confirms success after Act; an action
// that succeeded but cannot be confirmed is not trusted. Inspect is optional
// and lets doctor report missing sub-resources (e.g. individual model names)
// even when the umbrella check passes.
type Target struct {
	ID          string
	Description string
	DependsOn   []string

	Check   func(c *ExecutionContext) bool
	Act     func(c *ExecutionContext) error
	Verify  func(c *ExecutionContext) error
	Inspect func(c *ExecutionContext) []string
}

// Bundle is a named, ordered group of target or bundle ids resolved as a unit.
type Bundle struct {
	ID      string
	Members []string
}

// Registry holds one domain's targets and bundles. Targets and bundles share
// a single namespace; definitions are constructed at startup and never mutated
// afterwards. Declaration order is preserved for listing and doctor sweeps.
type Registry struct {
	domain  string
	targets map[string]*Target
	bundles map[string][]string

	targetOrder []string
	bundleOrder []string
}

// NewRegistry creates an empty registry for the named domain.
func NewRegistry(domain string) *Registry {
	return &Registry{
		domain:  domain,
		targets: make(map[string]*Target),
		bundles: make(map[string][]string),
	}
}

// Domain returns the registry's domain name (install, pull or create).
func (r *Registry) Domain() string {
	return r.domain
}

// Register adds a target. Ids must be unique across targets and bundles.
func (r *Registry) Register(t *Target) error {
	if t == nil || t.ID == "" {
		return continuumerrors.NewValidationError("targets", "target id must not be empty", nil)
	}
	if _, exists := r.targets[t.ID]; exists {
		return continuumerrors.NewValidationError("targets", fmt.Sprintf("duplicate target id %q", t.ID), nil)
	}
	if _, exists := r.bundles[t.ID]; exists {
		return continuumerrors.NewValidationError("targets", fmt.Sprintf("target id %q collides with a bundle", t.ID), nil)
	}

	r.targets[t.ID] = t
	r.targetOrder = append(r.targetOrder, t.ID)
	return nil
}

// RegisterBundle adds a named group of target or bundle ids.
func (r *Registry) RegisterBundle(id string, members ...string) error {
	if id == "" {
		return continuumerrors.NewValidationError("bundles", "bundle id must not be empty", nil)
	}
	if _, exists := r.bundles[id]; exists {
		return continuumerrors.NewValidationError("bundles", fmt.Sprintf("duplicate bundle id %q", id), nil)
	}
	if _, exists := r.targets[id]; exists {
		return continuumerrors.NewValidationError("bundles", fmt.Sprintf("bundle id %q collides with a target", id), nil)
	}

	r.bundles[id] = append([]string(nil), members...)
	r.bundleOrder = append(r.bundleOrder, id)
	return nil
}

// Target returns the target registered under id, if any.
func (r *Registry) Target(id string) (*Target, bool) {
	t, ok := r.targets[id]
	return t, ok
}

// Bundle returns the member list of the bundle registered under id, if any.
func (r *Registry) Bundle(id string) ([]string, bool) {
	members, ok := r.bundles[id]
	if !ok {
		return nil, false
	}
	return append([]string(nil), members...), true
}

// Targets returns all targets in declaration order.
func (r *Registry) Targets() []*Target {
	out := make([]*Target, 0, len(r.targetOrder))
	for _, id := range r.targetOrder {
		out = append(out, r.targets[id])
	}
	return out
}

// Bundles returns all bundles in declaration order.
func (r *Registry) Bundles() []Bundle {
	out := make([]Bundle, 0, len(r.bundleOrder))
	for _, id := range r.bundleOrder {
		out = append(out, Bundle{ID: id, Members: append([]string(nil), r.bundles[id]...)})
	}
	return out
}
