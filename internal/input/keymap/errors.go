package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keyremap/internal/input/key"
)

// Binding validation errors.
var (
	// ErrInvalidBinding indicates a binding whose primary function resolves to zero
	// or whose codes are out of range.
	ErrInvalidBinding = errors.New("keymap: invalid binding")

	// ErrMissingTrigger indicates a binding without a physical key.
	ErrMissingTrigger = errors.New("keymap: binding has no trigger key")

	// ErrEmptyBinding indicates a binding with neither a primary nor a secondary function.
	ErrEmptyBinding = errors.New("keymap: binding has neither primary nor secondary function")

	// ErrDuplicateTrigger indicates two bindings for the same physical key.
	ErrDuplicateTrigger = errors.New("keymap: duplicate trigger key")
)

// ConfigurationError reports an invalid binding detected when a table is built.
type ConfigurationError struct {
	Index   int      // Position of the binding in the input list
	Trigger key.Code // Physical key of the offending binding
	Err     error    // Underlying error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Trigger == key.CodeNone {
		return fmt.Sprintf("binding %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("binding %d (%s): %v", e.Index, e.Trigger, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
