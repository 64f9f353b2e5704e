package engine

import "github.com/dshills/keyremap/internal/clock"

// DefaultHoldWindow is the time a dual-role key may be held and still count
// as a tap.
const DefaultHoldWindow clock.Millis = 200

// Option configures an Engine during creation.
type Option func(*Engine)

// WithHoldWindow sets the tap/hold threshold.
// Non-positive values are ignored.
func WithHoldWindow(window clock.Millis) Option {
	return func(e *Engine) {
		if window > 0 {
			e.holdWindow = window
		}
	}
}
