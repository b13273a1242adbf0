package engine

import (
	continuumerrors "github.com/continuum-ml/continuum/pkg/errors"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	done
)

// Resolve expands the requested ids (targets or bundles) into a flat,
// dependency-ordered plan. Each target appears exactly once, at the position
// of its first full resolution, with every dependency strictly earlier.
//
// Depth-first expansion with explicit visiting/visited tracking: revisiting an
// id that is currently being expanded is the cycle condition; an id that is
// neither a target nor a bundle fails resolution before any side effect.
func (r *Registry) Resolve(requested ...string) ([]string, error) {
	states := make(map[string]visitState)
	var plan []string

	var visit func(id string) error
	visit = func(id string) error {
		switch states[id] {
		case done:
			return nil
		case visiting:
			return continuumerrors.NewCycleError(r.domain, id)
		}
		states[id] = visiting

		if members, ok := r.bundles[id]; ok {
			for _, member := range members {
				if err := visit(member); err != nil {
					return err
				}
			}
		} else if target, ok := r.targets[id]; ok {
			for _, dep := range target.DependsOn {
				if err := visit(dep); err != nil {
					return err
				}
			}
			plan = append(plan, id)
		} else {
			return continuumerrors.NewUnknownTargetError(r.domain, id)
		}

		states[id] = done
		return nil
	}

	for _, id := range requested {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
