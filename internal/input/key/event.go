package key

import (
	"fmt"

	"github.com/dshills/keyremap/internal/clock"
)

// Transition is the state change carried by a key event.
// The numeric values match the raw evdev EV_KEY values.
type Transition int32

const (
	// Up indicates the key was released.
	Up Transition = 0

	// Down indicates the key was pressed.
	Down Transition = 1

	// Repeat is the autorepeat signal sent while a key stays down.
	Repeat Transition = 2
)

// ParseTransition converts a raw event value to a Transition.
// Returns false for values outside {0, 1, 2}.
func ParseTransition(value int32) (Transition, bool) {
	switch Transition(value) {
	case Up, Down, Repeat:
		return Transition(value), true
	default:
		return 0, false
	}
}

// Value returns the raw event value.
func (t Transition) Value() int32 {
	return int32(t)
}

// String returns "Up", "Down", or "Repeat".
func (t Transition) String() string {
	switch t {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Repeat:
		return "Repeat"
	default:
		return fmt.Sprintf("Transition(%d)", int32(t))
	}
}

// Event represents a single physical key transition.
type Event struct {
	// Code identifies the physical key.
	Code Code

	// Transition is what happened to the key.
	Transition Transition

	// Time is when the event was read, on the monotonic clock.
	Time clock.Millis
}

// NewEvent creates a key event.
func NewEvent(code Code, t Transition, at clock.Millis) Event {
	return Event{Code: code, Transition: t, Time: at}
}

// String returns a representation like "Down(SPACE,t=0ms)".
func (e Event) String() string {
	return fmt.Sprintf("%s(%s,t=%s)", e.Transition, e.Code, e.Time)
}

// Output is a key change to be written to the virtual device.
type Output struct {
	Code  Code
	Value Transition
}

// Press returns the Down output for c.
func Press(c Code) Output {
	return Output{Code: c, Value: Down}
}

// Release returns the Up output for c.
func Release(c Code) Output {
	return Output{Code: c, Value: Up}
}

// String returns a representation like "LEFTCTRL Down".
func (o Output) String() string {
	return o.Code.String() + " " + o.Value.String()
}

// GoString implements fmt.GoStringer for debugging.
func (o Output) GoString() string {
	return fmt.Sprintf("Output{Code: %d (%s), Value: %d}", uint16(o.Code), o.Code, int32(o.Value))
}
