package engine

import (
	"sync"

	"github.com/dshills/keyremap/internal/clock"
	"github.com/dshills/keyremap/internal/input/key"
	"github.com/dshills/keyremap/internal/input/keymap"
)

// Engine resolves physical key transitions into output key changes.
type Engine struct {
	mu sync.Mutex

	table      *keymap.Table
	holdWindow clock.Millis

	// mods holds one entry per dual-role binding, in table order.
	mods []modifier

	// slots maps a table index to its entry in mods, or -1.
	slots []int

	stats counters
}

// New creates an engine for table. The table must already be validated,
// which keymap.NewTable guarantees.
func New(table *keymap.Table, opts ...Option) *Engine {
	e := &Engine{
		table:      table,
		holdWindow: DefaultHoldWindow,
		slots:      make([]int, table.Len()),
	}

	for _, opt := range opts {
		opt(e)
	}

	for i := 0; i < table.Len(); i++ {
		b := table.At(i)
		if !b.IsDualRole() {
			e.slots[i] = -1
			continue
		}
		e.slots[i] = len(e.mods)
		e.mods = append(e.mods, modifier{binding: b})
	}

	return e
}

// HoldWindow returns the configured tap/hold threshold.
func (e *Engine) HoldWindow() clock.Millis {
	return e.holdWindow
}

// Table returns the binding table the engine was built with.
func (e *Engine) Table() *keymap.Table {
	return e.table
}

// HandleEvent is Handle for a key.Event.
func (e *Engine) HandleEvent(ev key.Event) []key.Output {
	return e.Handle(ev.Code, ev.Transition.Value(), ev.Time)
}

// Handle processes one raw key transition observed at now and returns the
// key changes to emit, in order. Values other than 0, 1, and 2 are ignored.
func (e *Engine) Handle(code key.Code, value int32, now clock.Millis) []key.Output {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.events.Add(1)

	t, ok := key.ParseTransition(value)
	if !ok {
		e.stats.malformed.Add(1)
		return nil
	}

	var out []key.Output
	i, b, found := e.table.Lookup(code)
	switch {
	case !found:
		out = e.handleNormal(out, code, t)
	case !b.IsDualRole():
		out = e.handleNormal(out, b.PrimaryCode(), t)
	default:
		out = e.handleDualRole(out, &e.mods[e.slots[i]], t, now)
	}

	e.stats.emitted.Add(uint64(len(out)))
	return out
}

// handleNormal forwards code, asserting pending secondaries before a press.
// Secondaries are asserted on press only, never on release or repeat.
func (e *Engine) handleNormal(out []key.Output, code key.Code, t key.Transition) []key.Output {
	if t == key.Down {
		out = e.coactivate(out)
	}
	return append(out, key.Output{Code: code, Value: t})
}

func (e *Engine) handleDualRole(out []key.Output, m *modifier, t key.Transition, now clock.Millis) []key.Output {
	switch t {
	case key.Down:
		if m.Held {
			e.stats.duplicates.Add(1)
			return out
		}
		m.Held = true
		m.DownSince = now
		return out

	case key.Repeat:
		if !m.Held || m.SecondaryActive {
			return out
		}
		// Autorepeat may fire before the window on fast keyboards.
		if clock.Since(m.DownSince, now) < e.holdWindow {
			e.stats.ignoredRepeats.Add(1)
			return out
		}
		return e.assertSecondary(out, m)

	case key.Up:
		if !m.Held {
			return out
		}
		m.Held = false

		if m.SecondaryActive {
			m.SecondaryActive = false
			return append(out, key.Release(m.binding.Secondary))
		}

		// No repeat confirmed the hold, so the release time decides.
		if clock.Since(m.DownSince, now) >= e.holdWindow {
			e.stats.timedOut.Add(1)
			return out
		}

		e.stats.taps.Add(1)
		out = e.coactivate(out)
		primary := m.binding.PrimaryCode()
		return append(out, key.Press(primary), key.Release(primary))
	}
	return out
}

// coactivate asserts the secondary function of every held dual-role key
// that has not asserted it yet.
func (e *Engine) coactivate(out []key.Output) []key.Output {
	for i := range e.mods {
		m := &e.mods[i]
		if m.Held && !m.SecondaryActive {
			out = e.assertSecondary(out, m)
		}
	}
	return out
}

func (e *Engine) assertSecondary(out []key.Output, m *modifier) []key.Output {
	m.SecondaryActive = true
	e.stats.holds.Add(1)
	return append(out, key.Press(m.binding.Secondary))
}

// Reset releases every asserted secondary function and returns all
// dual-role keys to Idle. The returned changes should be written before the
// virtual device is destroyed so no modifier stays stuck on the host.
func (e *Engine) Reset() []key.Output {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []key.Output
	for i := range e.mods {
		m := &e.mods[i]
		if m.SecondaryActive {
			out = append(out, key.Release(m.binding.Secondary))
		}
		m.ModifierState = ModifierState{}
	}
	e.stats.emitted.Add(uint64(len(out)))
	return out
}

// Modifier returns a copy of the state of the dual-role binding for trigger.
func (e *Engine) Modifier(trigger key.Code) (ModifierState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, _, ok := e.table.Lookup(trigger)
	if !ok || e.slots[i] < 0 {
		return ModifierState{}, false
	}
	return e.mods[e.slots[i]].ModifierState, true
}

// State returns the state machine position of the dual-role binding for trigger.
func (e *Engine) State(trigger key.Code) (State, bool) {
	m, ok := e.Modifier(trigger)
	if !ok {
		return Idle, false
	}
	return m.State(), true
}
