package device

import (
	"sort"

	"github.com/dshills/keyremap/internal/dispatcher"
	"github.com/dshills/keyremap/internal/input/key"
)

// keyTracker follows which keys are down according to the event stream so
// the state can be reconciled after the kernel drops events.
type keyTracker struct {
	down map[key.Code]bool
}

func newKeyTracker() *keyTracker {
	return &keyTracker{down: make(map[key.Code]bool)}
}

func (t *keyTracker) observe(ev dispatcher.RawEvent) {
	if ev.Type != dispatcher.TypeKey {
		return
	}
	code := key.Code(ev.Code)
	switch ev.Value {
	case 0:
		delete(t.down, code)
	case 1, 2:
		t.down[code] = true
	}
}

// resync replaces the tracked state with current and returns the key events
// that would have produced the change. Releases come before presses, each
// in ascending code order.
func (t *keyTracker) resync(current map[key.Code]bool) []dispatcher.RawEvent {
	var released, pressed []key.Code
	for code := range t.down {
		if !current[code] {
			released = append(released, code)
		}
	}
	for code, down := range current {
		if down && !t.down[code] {
			pressed = append(pressed, code)
		}
	}
	sortCodes(released)
	sortCodes(pressed)

	events := make([]dispatcher.RawEvent, 0, len(released)+len(pressed))
	for _, code := range released {
		events = append(events, dispatcher.RawEvent{Type: dispatcher.TypeKey, Code: uint16(code), Value: 0})
	}
	for _, code := range pressed {
		events = append(events, dispatcher.RawEvent{Type: dispatcher.TypeKey, Code: uint16(code), Value: 1})
	}

	t.down = make(map[key.Code]bool, len(current))
	for code, down := range current {
		if down {
			t.down[code] = true
		}
	}
	return events
}

func sortCodes(codes []key.Code) {
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
}

// mergeCodes returns the union of a and b in ascending order.
func mergeCodes(a, b []key.Code) []key.Code {
	seen := make(map[key.Code]bool, len(a)+len(b))
	out := make([]key.Code, 0, len(a)+len(b))
	for _, list := range [][]key.Code{a, b} {
		for _, c := range list {
			if c.IsNone() || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	sortCodes(out)
	return out
}
