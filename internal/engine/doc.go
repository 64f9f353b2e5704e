// Package engine implements the dual-role key resolution engine.
//
// The engine consumes physical key transitions and returns the ordered list
// of key changes to write to the virtual device. It owns one ModifierState
// per dual-role binding and never performs I/O.
//
// # Binding Kinds
//
// Every incoming key falls into one of three cases:
//
//   - Unmapped: forwarded unchanged.
//   - Simple remap (no secondary function): the primary function is emitted
//     with the same transition as the input.
//   - Dual-role: resolved by the state machine below.
//
// # Dual-Role State Machine
//
//	Idle ──Down──▶ Pending ──Repeat (held ≥ window)──▶ SecondaryActive
//	  ▲               │                                     │
//	  └──Up (tap or timed-out hold)                         │
//	  └─────────────────────────────Up (secondary Up)───────┘
//
// A Down moves an idle key to Pending without output. A tap (Up before the
// hold window elapses) emits the primary function Down and Up. An Up after
// the window with no secondary emitted emits nothing. A Repeat after the
// window asserts the secondary function.
//
// # Co-activation
//
// Before any normal key Down is emitted, every dual-role key that is held
// but whose secondary function is not yet asserted gets its secondary Down
// emitted first. Holding Space and tapping C therefore yields
// LEFTCTRL Down, C Down rather than a space.
//
// # Timing
//
// The hold window is evaluated lazily when a Repeat or Up arrives. There are
// no timers; a key held with no further events stays Pending.
//
// # Thread Safety
//
// Engine is safe for concurrent use. A single mutex guards the whole state
// table, which is ample for human typing rates.
package engine
