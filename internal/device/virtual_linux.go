//go:build linux

package device

import (
	"github.com/holoplot/go-evdev"

	"github.com/dshills/keyremap/internal/input/key"
)

// virtualID identifies the virtual device to the host.
var virtualID = evdev.InputID{
	BusType: 0x03, // BUS_USB
	Vendor:  0x1,
	Product: 0x1,
	Version: 1,
}

// Virtual is an evdev output device.
type Virtual struct {
	dev *evdev.InputDevice
}

// CreateVirtual creates an output device named name that can emit codes.
func CreateVirtual(name string, codes []key.Code) (*Virtual, error) {
	evCodes := make([]evdev.EvCode, 0, len(codes))
	for _, c := range codes {
		evCodes = append(evCodes, evdev.EvCode(c))
	}

	dev, err := evdev.CreateDevice(name, virtualID, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: evCodes,
	})
	if err != nil {
		return nil, err
	}
	return &Virtual{dev: dev}, nil
}

// WriteKey writes one key change.
func (v *Virtual) WriteKey(code key.Code, value int32) error {
	return v.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_KEY,
		Code:  evdev.EvCode(code),
		Value: value,
	})
}

// Sync writes a SYN_REPORT frame marker.
func (v *Virtual) Sync() error {
	return v.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_SYN,
		Code:  evdev.SYN_REPORT,
		Value: 0,
	})
}

// Close destroys the device.
func (v *Virtual) Close() error {
	return v.dev.Close()
}
