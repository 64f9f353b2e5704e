//go:build linux

package device

import (
	"github.com/bendahl/uinput"

	"github.com/dshills/keyremap/internal/input/key"
)

// uinputPath is the uinput control node.
const uinputPath = "/dev/uinput"

// UinputKeyboard is an output device backed by github.com/bendahl/uinput.
// The library reports every change itself, so Sync does nothing, and it has
// no way to send a repeat, so repeats are dropped and the host repeats.
type UinputKeyboard struct {
	kbd uinput.Keyboard
}

// CreateUinputKeyboard creates a generic virtual keyboard named name.
func CreateUinputKeyboard(name string) (*UinputKeyboard, error) {
	kbd, err := uinput.CreateKeyboard(uinputPath, []byte(name))
	if err != nil {
		return nil, err
	}
	return &UinputKeyboard{kbd: kbd}, nil
}

// WriteKey writes one key change.
func (u *UinputKeyboard) WriteKey(code key.Code, value int32) error {
	switch key.Transition(value) {
	case key.Down:
		return u.kbd.KeyDown(int(code))
	case key.Up:
		return u.kbd.KeyUp(int(code))
	default:
		return nil
	}
}

// Sync is a no-op.
func (u *UinputKeyboard) Sync() error {
	return nil
}

// Close destroys the device.
func (u *UinputKeyboard) Close() error {
	return u.kbd.Close()
}
