package device

import (
	"fmt"
	"strings"
)

// Backend selects the library used to create the virtual device.
type Backend string

const (
	// BackendEvdev creates the output with github.com/holoplot/go-evdev and
	// clones the key capabilities of the physical keyboard.
	BackendEvdev Backend = "evdev"

	// BackendUinput creates a generic keyboard with github.com/bendahl/uinput.
	// Repeat events cannot be expressed and are dropped.
	BackendUinput Backend = "uinput"
)

// ParseBackend parses a backend name. The empty string selects BackendEvdev.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BackendEvdev):
		return BackendEvdev, nil
	case string(BackendUinput):
		return BackendUinput, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// String returns the backend name.
func (b Backend) String() string {
	return string(b)
}
