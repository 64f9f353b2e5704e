package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/clock"
	"github.com/dshills/keyremap/internal/input/key"
)

// Dispatcher feeds key events from a Source through a Handler to a Sink.
type Dispatcher struct {
	mu sync.Mutex

	handler Handler
	source  Source
	sink    Sink

	config  Config
	log     logrus.FieldLogger
	metrics *Metrics

	// pressed records when each physical key went down, for hold logging.
	pressed map[key.Code]clock.Millis
}

// New creates a dispatcher. Handler, source, and sink are required.
func New(h Handler, src Source, sink Sink, config Config) (*Dispatcher, error) {
	switch {
	case h == nil:
		return nil, ErrNilHandler
	case src == nil:
		return nil, ErrNilSource
	case sink == nil:
		return nil, ErrNilSink
	}

	config = config.withDefaults()
	return &Dispatcher{
		handler: h,
		source:  src,
		sink:    sink,
		config:  config,
		log:     config.Logger,
		metrics: NewMetrics(),
		pressed: make(map[key.Code]clock.Millis),
	}, nil
}

// Metrics returns the dispatcher metrics.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Run reads and dispatches events until the source ends, ctx is done, or an
// output write fails. End of input returns nil.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, err := d.source.ReadEvent(ctx)
		if err != nil {
			// Closing the device to unblock a read surfaces as a read error.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, io.EOF) || errors.Is(err, ErrSourceClosed) {
				d.log.Debug("input source closed")
				return nil
			}
			return fmt.Errorf("%w: %w", ErrSourceRead, err)
		}

		if err := d.Dispatch(ev); err != nil {
			return err
		}
	}
}

// Dispatch processes a single raw event.
func (d *Dispatcher) Dispatch(ev RawEvent) error {
	d.metrics.eventsRead.Add(1)
	if ev.Type != TypeKey {
		d.metrics.ignored.Add(1)
		return nil
	}
	d.metrics.keyEvents.Add(1)

	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	now := d.config.Clock.Now()
	code := key.Code(ev.Code)

	t, ok := key.ParseTransition(ev.Value)
	if !ok {
		d.metrics.malformed.Add(1)
		d.log.WithFields(logrus.Fields{
			"code":  code,
			"value": ev.Value,
		}).Debug("ignoring key event with unknown value")
	} else {
		d.trackHold(code, t, now)
	}

	outputs, err := d.handle(code, ev.Value, now)
	if err != nil {
		return err
	}

	err = d.flushLocked(outputs)
	d.metrics.recordLatency(time.Since(start))
	return err
}

// Flush writes changes produced outside the read loop, such as the releases
// returned by an engine reset.
func (d *Dispatcher) Flush(outputs []key.Output) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushLocked(outputs)
}

func (d *Dispatcher) flushLocked(outputs []key.Output) error {
	for _, o := range outputs {
		d.log.Debugf("Key: %d (value: %d)", uint16(o.Code), o.Value.Value())

		if err := d.sink.WriteKey(o.Code, o.Value.Value()); err != nil {
			d.metrics.writeErrors.Add(1)
			return &OutputError{Op: "write", Output: o, Err: err}
		}
		d.metrics.outputs.Add(1)

		if err := d.sink.Sync(); err != nil {
			d.metrics.writeErrors.Add(1)
			return &OutputError{Op: "sync", Output: o, Err: err}
		}
		d.metrics.syncMarkers.Add(1)
	}
	return nil
}

func (d *Dispatcher) handle(code key.Code, value int32, now clock.Millis) (outputs []key.Output, err error) {
	if !d.config.RecoverFromPanic {
		return d.handler.Handle(code, value, now), nil
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			err = fmt.Errorf("%w: %s: %v\n%s", ErrPanic, code, r, stack[:n])
		}
	}()
	return d.handler.Handle(code, value, now), nil
}

func (d *Dispatcher) trackHold(code key.Code, t key.Transition, now clock.Millis) {
	switch t {
	case key.Down:
		if _, held := d.pressed[code]; !held {
			d.pressed[code] = now
		}
	case key.Up:
		if since, held := d.pressed[code]; held {
			delete(d.pressed, code)
			d.log.WithField("key", code).Debugf("Duration: %s", clock.Since(since, now))
		}
	}
}
