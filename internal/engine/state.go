package engine

import (
	"github.com/dshills/keyremap/internal/clock"
	"github.com/dshills/keyremap/internal/input/keymap"
)

// State is the resolution state of a dual-role key.
type State uint8

const (
	// Idle means the key is not held.
	Idle State = iota

	// Pending means the key is held and the tap/hold decision is deferred.
	Pending

	// SecondaryActive means the secondary function is asserted on the output.
	SecondaryActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pending:
		return "Pending"
	case SecondaryActive:
		return "SecondaryActive"
	default:
		return "Unknown"
	}
}

// ModifierState is the mutable state of one dual-role binding.
// SecondaryActive implies Held.
type ModifierState struct {
	Held            bool
	SecondaryActive bool
	DownSince       clock.Millis
}

// State derives the state machine position from the flags.
func (m ModifierState) State() State {
	switch {
	case m.SecondaryActive:
		return SecondaryActive
	case m.Held:
		return Pending
	default:
		return Idle
	}
}

// modifier pairs a dual-role binding with its state.
type modifier struct {
	binding keymap.Binding
	ModifierState
}
