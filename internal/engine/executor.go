package engine

import (
	"errors"
	"fmt"

	"github.com/continuum-ml/continuum/internal/state"
	continuumerrors "github.com/continuum-ml/continuum/pkg/errors"
)

// ErrConfirmationDeclined is returned when the user rejects the confirmation
// prompt. Nothing has mutated, in the state store or on the system.
var ErrConfirmationDeclined = errors.New("confirmation declined")

// Executor walks a resolved plan strictly sequentially, consulting and
// updating the domain's state store.
type Executor struct {
	registry *Registry
	store    *state.Store
}

// NewExecutor creates an executor for one domain.
func NewExecutor(registry *Registry, store *state.Store) *Executor {
	return &Executor{registry: registry, store: store}
}

// Run executes the plan in order with check/act/verify semantics.
//
// Satisfied targets are recorded already_satisfied and skipped. Before the
// first mutating action the user is asked to confirm once for the whole
// invocation, unless auto-confirm or dry-run is set; declining aborts with no
// state write. Dry-run prints what would happen and never mutates the state
// store or the system. A failing act or verify records the target as failed,
// persists state immediately and halts the plan; targets behind the failure
// stay absent from this invocation's state update.
func (e *Executor) Run(c *ExecutionContext, plan []string) error {
	records := e.store.Load()
	confirmed := c.AutoConfirm || c.DryRun

	for i, id := range plan {
		target, ok := e.registry.Target(id)
		if !ok {
			return continuumerrors.NewUnknownTargetError(e.registry.Domain(), id)
		}

		if target.Check(c) {
			c.Printf("[ok] %s already satisfied\n", id)
			records[id] = state.NewRecord(state.ResultAlreadySatisfied, nil)
			continue
		}

		if !confirmed {
			if c.Confirm == nil || !c.Confirm(plan[i:]) {
				c.Printf("Aborted.\n")
				return ErrConfirmationDeclined
			}
			confirmed = true
		}

		if c.DryRun {
			c.Printf("[dry-run] would apply %s (%s)\n", id, target.Description)
			continue
		}

		c.Printf("[run] applying %s...\n", id)
		err := target.Act(c)
		if err == nil && target.Verify != nil {
			err = target.Verify(c)
		}
		if err != nil {
			c.Printf("[err] %s: %v\n", id, err)
			if c.Log != nil {
				c.Log.WithFields(map[string]any{"domain": e.registry.Domain(), "target": id}).Error(err, "target failed")
			}
			records[id] = state.NewRecord(state.ResultFailed, err)
			if saveErr := e.store.Save(records); saveErr != nil {
				return fmt.Errorf("persisting state after failure of %s: %w", id, saveErr)
			}
			return continuumerrors.NewExecutionError(id, len(plan)-i-1, err)
		}

		c.Printf("[ok] applied %s\n", id)
		records[id] = state.NewRecord(state.ResultSuccess, nil)
	}

	if c.DryRun {
		return nil
	}
	return e.store.Save(records)
}
