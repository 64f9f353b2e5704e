package keymap

import (
	"fmt"

	"github.com/dshills/keyremap/internal/input/key"
)

// Spec is a binding written with key names, as it appears in configuration files.
type Spec struct {
	Key       string `toml:"key" yaml:"key"`
	Primary   string `toml:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary string `toml:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// Resolve converts the names in s to a Binding.
// Empty Primary and Secondary fields resolve to zero.
func (s Spec) Resolve() (Binding, error) {
	var b Binding
	var err error

	if b.Trigger, err = key.ParseCode(s.Key); err != nil {
		return Binding{}, fmt.Errorf("key: %w", err)
	}
	if s.Primary != "" {
		if b.Primary, err = key.ParseCode(s.Primary); err != nil {
			return Binding{}, fmt.Errorf("primary: %w", err)
		}
	}
	if s.Secondary != "" {
		if b.Secondary, err = key.ParseCode(s.Secondary); err != nil {
			return Binding{}, fmt.Errorf("secondary: %w", err)
		}
	}
	return b, nil
}

// LoadSpecs resolves specs and builds a validated table.
// Name resolution failures are reported as *ConfigurationError wrapping
// ErrInvalidBinding, the same as structural validation failures.
func LoadSpecs(specs []Spec) (*Table, error) {
	bindings := make([]Binding, 0, len(specs))
	for i, s := range specs {
		b, err := s.Resolve()
		if err != nil {
			return nil, &ConfigurationError{
				Index: i,
				Err:   fmt.Errorf("%w: %s: %w", ErrInvalidBinding, s.Key, err),
			}
		}
		bindings = append(bindings, b)
	}
	return NewTable(bindings)
}
