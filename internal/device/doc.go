// Package device opens the physical keyboard and the virtual output device.
//
// A Session owns both handles. Opening it waits for the startup delay,
// optionally waits for the device node to appear, opens and grabs the
// physical keyboard, creates the virtual device, and waits for the host to
// register it. Close releases everything in reverse order, exactly once.
//
// The physical side reads through github.com/holoplot/go-evdev. The output
// side uses either the same library ("evdev" backend) or
// github.com/bendahl/uinput ("uinput" backend). Device access is only
// available on Linux; elsewhere Open fails with ErrUnsupported.
package device
