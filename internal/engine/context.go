package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/continuum-ml/continuum/internal/logger"
)

// ExecutionContext carries per-invocation configuration into target
// check/act/verify calls. It is immutable apart from the one-shot key set,
// which lets actions share "already done this invocation" facts (such as a
// completed apt-get update) without package-level globals.
type ExecutionContext struct {
	Context   context.Context
	Workspace string

	DryRun      bool
	Verbose     bool
	AutoConfirm bool

	Log *logger.Logger
	Out io.Writer

	// Confirm is consulted once per invocation before the first mutating
	// action. A nil Confirm declines.
	Confirm func(pending []string) bool

	once map[string]bool
}

// Ctx returns the invocation context, defaulting to context.Background.
func (c *ExecutionContext) Ctx() context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

// Once reports whether key has not been used yet this invocation, marking it
// used. The first caller gets true, every later caller false.
func (c *ExecutionContext) Once(key string) bool {
	if c.once == nil {
		c.once = make(map[string]bool)
	}
	if c.once[key] {
		return false
	}
	c.once[key] = true
	return true
}

// Printf writes a progress line to the invocation's output stream.
func (c *ExecutionContext) Printf(format string, args ...any) {
	if c.Out == nil {
		return
	}
	fmt.Fprintf(c.Out, format, args...)
}
