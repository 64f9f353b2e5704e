package dispatcher

import (
	"context"

	"github.com/dshills/keyremap/internal/clock"
	"github.com/dshills/keyremap/internal/input/key"
)

// TypeKey is the raw event type of key transitions.
const TypeKey uint16 = 0x01

// RawEvent is one event as read from an input device.
type RawEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Source produces raw input events.
//
// ReadEvent blocks until an event is available. It returns io.EOF or
// ErrSourceClosed when no more events will arrive.
type Source interface {
	ReadEvent(ctx context.Context) (RawEvent, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (RawEvent, error)

// ReadEvent calls f(ctx).
func (f SourceFunc) ReadEvent(ctx context.Context) (RawEvent, error) {
	return f(ctx)
}

// Sink accepts output key changes.
//
// WriteKey emits one key change; Sync emits the frame marker that makes the
// preceding change visible to the host.
type Sink interface {
	WriteKey(code key.Code, value int32) error
	Sync() error
}

// Handler resolves a key transition into output changes.
// *engine.Engine satisfies it.
type Handler interface {
	Handle(code key.Code, value int32, now clock.Millis) []key.Output
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(code key.Code, value int32, now clock.Millis) []key.Output

// Handle calls f(code, value, now).
func (f HandlerFunc) Handle(code key.Code, value int32, now clock.Millis) []key.Output {
	return f(code, value, now)
}
