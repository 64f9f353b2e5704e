//go:build linux

package clock

import (
	"golang.org/x/sys/unix"
)

// Monotonic reads CLOCK_MONOTONIC, the same clock the kernel uses for
// input event timestamps when the device is switched to it.
type Monotonic struct{}

// Now returns milliseconds since an unspecified point in the past.
func (Monotonic) Now() Millis {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return fallbackNow()
	}
	return Millis(ts.Sec)*1000 + Millis(ts.Nsec)/1_000_000
}
