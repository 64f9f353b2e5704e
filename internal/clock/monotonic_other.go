//go:build !linux

package clock

// Monotonic falls back to the runtime's monotonic reading on platforms
// without CLOCK_MONOTONIC.
type Monotonic struct{}

// Now returns milliseconds since process start.
func (Monotonic) Now() Millis {
	return fallbackNow()
}
