package device

import (
	"errors"
	"fmt"
)

// Device errors.
var (
	// ErrUnsupported indicates device access is not available on this platform.
	ErrUnsupported = errors.New("device: unsupported platform")

	// ErrNotKeyboard indicates the input device reports no key events.
	ErrNotKeyboard = errors.New("device: not a keyboard")

	// ErrDeviceTimeout indicates the device node did not appear in time.
	ErrDeviceTimeout = errors.New("device: timed out waiting for device")

	// ErrUnknownBackend indicates an unrecognized output backend name.
	ErrUnknownBackend = errors.New("device: unknown backend")

	// ErrNoPath indicates no input device path was given.
	ErrNoPath = errors.New("device: no device path")
)

// Setup stages reported by SetupError.
const (
	StageStartup = "startup"
	StageWait    = "wait"
	StageInput   = "open input"
	StageOutput  = "create output"
	StageSettle  = "settle"
)

// SetupError describes a failure while acquiring devices.
type SetupError struct {
	Stage string
	Path  string
	Err   error
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("device: %s %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("device: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *SetupError) Unwrap() error {
	return e.Err
}
