package device

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/dispatcher"
	"github.com/dshills/keyremap/internal/input/key"
)

// Default timings.
const (
	// DefaultStartupDelay lets the Enter release that launched the program
	// reach the host before the keyboard is grabbed.
	DefaultStartupDelay = 100 * time.Millisecond

	// DefaultSettleDelay gives the host time to register the virtual device
	// before the first event is written to it.
	DefaultSettleDelay = time.Second

	// DefaultName is the name of the virtual device.
	DefaultName = "Keyboard Remapper"
)

// InputDevice is a grabbed physical keyboard.
type InputDevice interface {
	dispatcher.Source
	io.Closer

	// Name returns the device name reported by the kernel.
	Name() string

	// KeyCodes returns the key codes the device can emit.
	KeyCodes() []key.Code
}

// OutputDevice is a virtual keyboard.
type OutputDevice interface {
	dispatcher.Sink
	io.Closer
}

// opener acquires platform devices.
type opener interface {
	openInput(path string, log logrus.FieldLogger) (InputDevice, error)
	openOutput(backend Backend, name string, codes []key.Code) (OutputDevice, error)
}

// SessionOptions configures Open.
type SessionOptions struct {
	// Path is the physical keyboard device node.
	Path string

	// Name is the virtual device name. Empty means DefaultName.
	Name string

	// Backend selects the output library. Empty means BackendEvdev.
	Backend Backend

	// ExtraCodes are key codes the output must support in addition to
	// those of the physical keyboard, typically the remap targets.
	ExtraCodes []key.Code

	// StartupDelay is waited before touching the input device.
	StartupDelay time.Duration

	// SettleDelay is waited after creating the virtual device.
	SettleDelay time.Duration

	// WaitTimeout, when positive, waits up to this long for Path to appear.
	WaitTimeout time.Duration

	// Logger receives setup progress. Nil discards it.
	Logger logrus.FieldLogger

	opener opener
}

// DefaultSessionOptions returns options with the default name and timings.
func DefaultSessionOptions(path string) SessionOptions {
	return SessionOptions{
		Path:         path,
		Name:         DefaultName,
		Backend:      BackendEvdev,
		StartupDelay: DefaultStartupDelay,
		SettleDelay:  DefaultSettleDelay,
	}
}

// Session owns the physical and virtual devices of one run.
type Session struct {
	input  InputDevice
	output OutputDevice
	log    logrus.FieldLogger

	inputOnce  sync.Once
	inputErr   error
	outputOnce sync.Once
	outputErr  error
}

// Open acquires the devices described by opts. On failure everything that
// was acquired is released and a *SetupError is returned.
func Open(ctx context.Context, opts SessionOptions) (*Session, error) {
	if opts.Path == "" {
		return nil, &SetupError{Stage: StageInput, Err: ErrNoPath}
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Backend == "" {
		opts.Backend = BackendEvdev
	}
	if opts.opener == nil {
		opts.opener = platformOpener{}
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log = log.WithField("device", opts.Path)

	if err := sleep(ctx, opts.StartupDelay); err != nil {
		return nil, &SetupError{Stage: StageStartup, Err: err}
	}

	if opts.WaitTimeout > 0 {
		log.WithField("timeout", opts.WaitTimeout).Debug("waiting for device")
		if err := WaitForDevice(ctx, opts.Path, opts.WaitTimeout); err != nil {
			return nil, &SetupError{Stage: StageWait, Path: opts.Path, Err: err}
		}
	}

	in, err := opts.opener.openInput(opts.Path, log)
	if err != nil {
		return nil, &SetupError{Stage: StageInput, Path: opts.Path, Err: err}
	}
	log.WithField("name", in.Name()).Info("grabbed input device")

	codes := mergeCodes(in.KeyCodes(), opts.ExtraCodes)
	out, err := opts.opener.openOutput(opts.Backend, opts.Name, codes)
	if err != nil {
		_ = in.Close()
		return nil, &SetupError{Stage: StageOutput, Path: opts.Path, Err: err}
	}
	log.WithFields(logrus.Fields{
		"name":    opts.Name,
		"backend": opts.Backend,
		"keys":    len(codes),
	}).Info("created virtual device")

	s := &Session{input: in, output: out, log: log}

	if err := sleep(ctx, opts.SettleDelay); err != nil {
		_ = s.Close()
		return nil, &SetupError{Stage: StageSettle, Path: opts.Path, Err: err}
	}
	return s, nil
}

// Input returns the physical keyboard.
func (s *Session) Input() InputDevice {
	return s.input
}

// Output returns the virtual keyboard.
func (s *Session) Output() OutputDevice {
	return s.output
}

// CloseInput ungrabs and closes the physical keyboard, which unblocks a
// pending read. It is safe to call from another goroutine and more than once.
func (s *Session) CloseInput() error {
	s.inputOnce.Do(func() {
		s.inputErr = s.input.Close()
		s.log.Debug("released input device")
	})
	return s.inputErr
}

// Close destroys the virtual device and releases the physical keyboard.
// Calling it again returns the first result.
func (s *Session) Close() error {
	s.outputOnce.Do(func() {
		s.outputErr = s.output.Close()
		s.log.Debug("destroyed virtual device")
	})
	return errors.Join(s.outputErr, s.CloseInput())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
