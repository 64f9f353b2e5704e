// Package keymap provides the static key binding table for the remapper.
//
// A Binding attaches up to two functions to one physical key:
//
//   - Primary: the key emitted when the physical key is tapped. When unset
//     it defaults to the physical key itself.
//   - Secondary: the key asserted while the physical key is held in
//     combination with other keys. Zero means the binding is a plain remap.
//
// # Validation
//
// Tables are validated once, when they are built. A binding with no
// trigger, a binding with neither function configured, and two bindings
// for the same trigger are all rejected with a *ConfigurationError so the
// program refuses to start instead of misbehaving at event time.
//
// # Example
//
//	table, err := keymap.NewTable([]keymap.Binding{
//		{Trigger: key.CodeSpace, Secondary: key.CodeLeftCtrl},
//		{Trigger: key.CodeCapsLock, Primary: key.CodeEsc},
//	})
package keymap
