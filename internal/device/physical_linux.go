//go:build linux

package device

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/holoplot/go-evdev"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/dispatcher"
	"github.com/dshills/keyremap/internal/input/key"
)

// Physical is a grabbed evdev keyboard.
type Physical struct {
	dev  *evdev.InputDevice
	name string
	log  logrus.FieldLogger

	tracker *keyTracker
	pending []dispatcher.RawEvent

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// OpenPhysical opens the keyboard at path and grabs it so no other reader
// receives its events.
func OpenPhysical(path string, log logrus.FieldLogger) (*Physical, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}

	if len(dev.CapableEvents(evdev.EV_KEY)) == 0 {
		_ = dev.Close()
		return nil, ErrNotKeyboard
	}

	name, err := dev.Name()
	if err != nil {
		name = path
	}

	if err := dev.Grab(); err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("grab: %w", err)
	}

	return &Physical{
		dev:     dev,
		name:    name,
		log:     log,
		tracker: newKeyTracker(),
	}, nil
}

// Name returns the device name.
func (p *Physical) Name() string {
	return p.name
}

// KeyCodes returns the key codes the keyboard can emit.
func (p *Physical) KeyCodes() []key.Code {
	caps := p.dev.CapableEvents(evdev.EV_KEY)
	codes := make([]key.Code, 0, len(caps))
	for _, c := range caps {
		codes = append(codes, key.Code(c))
	}
	return codes
}

// ReadEvent returns the next event. It blocks in the kernel read and is
// unblocked by Close; ctx is only checked between reads.
func (p *Physical) ReadEvent(ctx context.Context) (dispatcher.RawEvent, error) {
	for {
		if len(p.pending) > 0 {
			ev := p.pending[0]
			p.pending = p.pending[1:]
			return ev, nil
		}
		if err := ctx.Err(); err != nil {
			return dispatcher.RawEvent{}, err
		}

		ev, err := p.readOne()
		if err != nil {
			return dispatcher.RawEvent{}, err
		}

		if ev.Type == uint16(evdev.EV_SYN) && ev.Code == uint16(evdev.SYN_DROPPED) {
			if err := p.resync(); err != nil {
				return dispatcher.RawEvent{}, err
			}
			continue
		}

		p.tracker.observe(ev)
		return ev, nil
	}
}

func (p *Physical) readOne() (dispatcher.RawEvent, error) {
	ev, err := p.dev.ReadOne()
	if err != nil {
		if p.closed.Load() {
			return dispatcher.RawEvent{}, dispatcher.ErrSourceClosed
		}
		return dispatcher.RawEvent{}, err
	}
	return dispatcher.RawEvent{
		Type:  uint16(ev.Type),
		Code:  uint16(ev.Code),
		Value: ev.Value,
	}, nil
}

// resync drops events up to the next report, then queues the key changes
// that were lost according to the kernel key state.
func (p *Physical) resync() error {
	for {
		ev, err := p.readOne()
		if err != nil {
			return err
		}
		if ev.Type == uint16(evdev.EV_SYN) && ev.Code == uint16(evdev.SYN_REPORT) {
			break
		}
	}

	state, err := p.dev.State(evdev.EV_KEY)
	if err != nil {
		return fmt.Errorf("read key state: %w", err)
	}

	current := make(map[key.Code]bool, len(state))
	for code, down := range state {
		if down {
			current[key.Code(code)] = true
		}
	}

	p.pending = append(p.pending, p.tracker.resync(current)...)
	p.log.WithField("synthesized", len(p.pending)).Warn("input events dropped by kernel, resynchronized key state")
	return nil
}

// Close ungrabs and closes the device.
func (p *Physical) Close() error {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		_ = p.dev.Ungrab()
		p.closeErr = p.dev.Close()
	})
	return p.closeErr
}
