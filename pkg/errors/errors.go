package errors

import (
	"fmt"
)

// UnknownTargetError reports a requested id that is neither a target nor a
// bundle in the domain's registry.
type UnknownTargetError struct {
	Domain string
	ID     string
}

// NewUnknownTargetError constructs an UnknownTargetError.
func NewUnknownTargetError(domain, id string) error {
	return &UnknownTargetError{Domain: domain, ID: id}
}

func (e *UnknownTargetError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown %s target: %s", e.Domain, e.ID)
}

// CycleError reports a dependency cycle discovered while resolving targets.
// ID is the target whose expansion re-entered itself.
type CycleError struct {
	Domain string
	ID     string
}

// NewCycleError constructs a CycleError.
func NewCycleError(domain, id string) error {
	return &CycleError{Domain: domain, ID: id}
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("cycle detected in %s targets: %s", e.Domain, e.ID)
}

// ExecutionError represents a runtime failure while applying a target.
// Remaining counts the targets left unattempted when the plan halted.
type ExecutionError struct {
	TargetID  string
	Remaining int
	Err       error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(targetID string, remaining int, err error) error {
	return &ExecutionError{TargetID: targetID, Remaining: remaining, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Remaining > 0 {
		return fmt.Sprintf("target %s failed: %v (%d targets not attempted)", e.TargetID, e.Err, e.Remaining)
	}
	return fmt.Sprintf("target %s failed: %v", e.TargetID, e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures registry construction or configuration issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
