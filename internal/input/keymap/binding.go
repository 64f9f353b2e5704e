package keymap

import (
	"fmt"

	"github.com/dshills/keyremap/internal/input/key"
)

// Binding represents the configuration of one physical key.
type Binding struct {
	// Trigger is the physical key this binding applies to.
	Trigger key.Code

	// Primary is emitted for a tap. Zero means "same as Trigger".
	Primary key.Code

	// Secondary is asserted while the key is held with other keys.
	// Zero means the binding is a simple remap.
	Secondary key.Code
}

// NewBinding creates a binding for trigger with the given functions.
func NewBinding(trigger, primary, secondary key.Code) Binding {
	return Binding{
		Trigger:   trigger,
		Primary:   primary,
		Secondary: secondary,
	}
}

// Remap creates a simple remap binding from trigger to target.
func Remap(trigger, target key.Code) Binding {
	return Binding{Trigger: trigger, Primary: target}
}

// DualRole creates a binding that taps as trigger and holds as secondary.
func DualRole(trigger, secondary key.Code) Binding {
	return Binding{Trigger: trigger, Secondary: secondary}
}

// PrimaryCode returns the key emitted for a tap, falling back to Trigger.
func (b Binding) PrimaryCode() key.Code {
	if b.Primary != key.CodeNone {
		return b.Primary
	}
	return b.Trigger
}

// IsDualRole returns true if the binding has a secondary function.
func (b Binding) IsDualRole() bool {
	return b.Secondary != key.CodeNone
}

// Validate checks the binding in isolation.
func (b Binding) Validate() error {
	if b.Trigger == key.CodeNone {
		return ErrMissingTrigger
	}
	if b.Primary == key.CodeNone && b.Secondary == key.CodeNone {
		return ErrEmptyBinding
	}
	for _, c := range []key.Code{b.Trigger, b.Primary, b.Secondary} {
		if c != key.CodeNone && !c.IsValid() {
			return fmt.Errorf("%w: keycode %d out of range", ErrInvalidBinding, uint16(c))
		}
	}
	return nil
}

// String returns a representation like "SPACE: tap=SPACE hold=LEFTCTRL".
func (b Binding) String() string {
	if !b.IsDualRole() {
		return fmt.Sprintf("%s: remap=%s", b.Trigger, b.PrimaryCode())
	}
	return fmt.Sprintf("%s: tap=%s hold=%s", b.Trigger, b.PrimaryCode(), b.Secondary)
}
