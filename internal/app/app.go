package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/config"
	"github.com/dshills/keyremap/internal/device"
	"github.com/dshills/keyremap/internal/dispatcher"
	"github.com/dshills/keyremap/internal/engine"
	"github.com/dshills/keyremap/internal/input/keymap"
)

// Session is an open pair of input and output devices.
// *device.Session satisfies it.
type Session interface {
	Input() device.InputDevice
	Output() device.OutputDevice
	CloseInput() error
	Close() error
}

// SessionOpener acquires devices for a run.
type SessionOpener func(ctx context.Context, opts device.SessionOptions) (Session, error)

// OpenDeviceSession opens real devices with device.Open.
func OpenDeviceSession(ctx context.Context, opts device.SessionOptions) (Session, error) {
	s, err := device.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Options configures the application.
type Options struct {
	// Logger receives all log output. Nil discards it.
	Logger logrus.FieldLogger

	// OpenSession acquires the devices. Nil means OpenDeviceSession.
	OpenSession SessionOpener
}

// Application remaps one keyboard until stopped.
type Application struct {
	mu sync.Mutex

	cfg    *config.Config
	log    logrus.FieldLogger
	table  *keymap.Table
	engine *engine.Engine
	open   SessionOpener

	// Set while running.
	session    Session
	dispatcher *dispatcher.Dispatcher
	cancel     context.CancelFunc
	stopping   bool

	running atomic.Bool
}

// New creates an application for cfg. The binding table is built here so
// configuration errors surface before any device is touched.
func New(cfg *config.Config, opts Options) (*Application, error) {
	if opts.Logger == nil {
		opts.Logger = NullLogger()
	}
	if opts.OpenSession == nil {
		opts.OpenSession = OpenDeviceSession
	}

	if err := cfg.RequireDevice(); err != nil {
		return nil, NewComponentError("config", "validate", errors.Join(ErrNoDevice, err))
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, NewComponentError("config", "load bindings", err)
	}

	return &Application{
		cfg:    cfg,
		log:    opts.Logger,
		table:  table,
		engine: engine.New(table, engine.WithHoldWindow(cfg.HoldWindow())),
		open:   opts.OpenSession,
	}, nil
}

// Engine returns the remapping engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Table returns the binding table.
func (app *Application) Table() *keymap.Table {
	return app.table
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run opens the devices and remaps events until ctx is cancelled, Shutdown
// is called, or the input ends. Normal termination returns nil. Devices
// are released and held modifiers are let go on every return path.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.mu.Lock()
	if app.stopping {
		app.mu.Unlock()
		return nil
	}
	app.cancel = cancel
	app.mu.Unlock()

	sopts := app.cfg.SessionOptions()
	sopts.ExtraCodes = app.table.OutputCodes()
	sopts.Logger = WithComponent(app.log, "device")

	sess, err := app.open(ctx, sopts)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return NewComponentError("device", "open", err)
	}

	d, err := dispatcher.New(app.engine, sess.Input(), sess.Output(),
		dispatcher.DefaultConfig().WithLogger(WithComponent(app.log, "dispatcher")))
	if err != nil {
		_ = sess.Close()
		return NewComponentError("dispatcher", "create", err)
	}

	app.mu.Lock()
	app.session = sess
	app.dispatcher = d
	stopping := app.stopping
	app.mu.Unlock()

	if !stopping {
		app.log.WithFields(logrus.Fields{
			"device":      app.cfg.Device.Path,
			"hold_window": app.engine.HoldWindow(),
			"bindings":    app.table.Len(),
			"dual_role":   app.table.DualRoleCount(),
		}).Info("remapping started")

		err = d.Run(ctx)
	}

	var runErr error
	if err != nil && !errors.Is(err, context.Canceled) {
		runErr = NewComponentError("dispatcher", "run", err)
	}

	return errors.Join(runErr, app.teardown(d, sess, err))
}

// teardown releases asserted modifiers and closes the devices.
func (app *Application) teardown(d *dispatcher.Dispatcher, sess Session, runErr error) error {
	var errs []error

	releases := app.engine.Reset()
	if len(releases) > 0 {
		if errors.Is(runErr, dispatcher.ErrOutputIO) {
			app.log.WithField("keys", len(releases)).Warn("output failed, cannot release held modifiers")
		} else if err := d.Flush(releases); err != nil {
			errs = append(errs, NewComponentError("dispatcher", "release modifiers", err))
		}
	}

	if err := sess.Close(); err != nil {
		errs = append(errs, NewComponentError("device", "close", err))
	}

	app.mu.Lock()
	app.session = nil
	app.cancel = nil
	app.mu.Unlock()

	app.logSummary(d)
	return errors.Join(errs...)
}

// Shutdown stops a running application. It closes the input device to
// unblock the pending read, so it is safe to call from a signal handler.
// Calling it before Run makes Run return immediately.
func (app *Application) Shutdown() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.stopping = true
	if app.cancel != nil {
		app.cancel()
	}
	if app.session != nil {
		if err := app.session.CloseInput(); err != nil {
			app.log.WithError(err).Debug("closing input device")
		}
	}
}
