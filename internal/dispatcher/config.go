package dispatcher

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/clock"
)

// Config holds dispatcher configuration options.
type Config struct {
	// Clock timestamps key events before they reach the handler.
	// Nil means the monotonic system clock.
	Clock clock.Clock

	// Logger receives per-event debug output. Nil discards it.
	Logger logrus.FieldLogger

	// RecoverFromPanic converts a handler panic into an ErrPanic error
	// so the caller still runs its teardown.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Clock:            clock.Monotonic{},
		RecoverFromPanic: true,
	}
}

// WithClock returns a copy of the config using c.
func (c Config) WithClock(clk clock.Clock) Config {
	c.Clock = clk
	return c
}

// WithLogger returns a copy of the config logging to l.
func (c Config) WithLogger(l logrus.FieldLogger) Config {
	c.Logger = l
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

func (c Config) withDefaults() Config {
	if c.Clock == nil {
		c.Clock = clock.Monotonic{}
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = l
	}
	return c
}
