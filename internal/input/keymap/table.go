package keymap

import (
	"github.com/dshills/keyremap/internal/input/key"
)

// Table is an immutable set of bindings indexed by trigger key.
// Each binding keeps the position it was given in, and that index is the
// identifier the engine uses for per-binding state.
type Table struct {
	bindings []Binding
	index    map[key.Code]int
}

// NewTable validates bindings and builds a lookup table.
// The first invalid binding is reported as a *ConfigurationError.
func NewTable(bindings []Binding) (*Table, error) {
	t := &Table{
		bindings: make([]Binding, 0, len(bindings)),
		index:    make(map[key.Code]int, len(bindings)),
	}

	for i, b := range bindings {
		if err := b.Validate(); err != nil {
			return nil, &ConfigurationError{Index: i, Trigger: b.Trigger, Err: err}
		}
		if _, dup := t.index[b.Trigger]; dup {
			return nil, &ConfigurationError{Index: i, Trigger: b.Trigger, Err: ErrDuplicateTrigger}
		}
		t.index[b.Trigger] = len(t.bindings)
		t.bindings = append(t.bindings, b)
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(bindings []Binding) *Table {
	t, err := NewTable(bindings)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the binding for code and its index.
func (t *Table) Lookup(code key.Code) (int, Binding, bool) {
	if t == nil {
		return -1, Binding{}, false
	}
	i, ok := t.index[code]
	if !ok {
		return -1, Binding{}, false
	}
	return i, t.bindings[i], true
}

// At returns the binding at index i.
func (t *Table) At(i int) Binding {
	return t.bindings[i]
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bindings)
}

// Bindings returns a copy of the bindings in table order.
func (t *Table) Bindings() []Binding {
	if t == nil {
		return nil
	}
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// DualRoleCount returns how many bindings have a secondary function.
func (t *Table) DualRoleCount() int {
	n := 0
	for _, b := range t.bindings {
		if b.IsDualRole() {
			n++
		}
	}
	return n
}

// OutputCodes returns every key the table can emit.
// The virtual device must advertise these in addition to the physical
// device's own keys.
func (t *Table) OutputCodes() []key.Code {
	seen := make(map[key.Code]bool)
	var out []key.Code
	add := func(c key.Code) {
		if c != key.CodeNone && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, b := range t.bindings {
		add(b.PrimaryCode())
		add(b.Secondary)
	}
	return out
}
