package keymap

import "github.com/dshills/keyremap/internal/input/key"

// DefaultBindings returns the bindings used when the configuration has none:
// Space doubles as Left Ctrl, Caps Lock becomes Escape, and Escape becomes
// the grave key that Caps Lock displaced.
func DefaultBindings() []Binding {
	return []Binding{
		DualRole(key.CodeSpace, key.CodeLeftCtrl),
		Remap(key.CodeCapsLock, key.CodeEsc),
		Remap(key.CodeEsc, key.CodeGrave),
	}
}

// DefaultTable returns a table of DefaultBindings.
func DefaultTable() *Table {
	return MustNewTable(DefaultBindings())
}
