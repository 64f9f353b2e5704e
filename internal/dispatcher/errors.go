package dispatcher

import (
	"errors"
	"fmt"

	"github.com/dshills/keyremap/internal/input/key"
)

// Dispatcher errors.
var (
	// ErrNilHandler indicates no handler was provided.
	ErrNilHandler = errors.New("dispatcher: nil handler")

	// ErrNilSource indicates no input source was provided.
	ErrNilSource = errors.New("dispatcher: nil source")

	// ErrNilSink indicates no output sink was provided.
	ErrNilSink = errors.New("dispatcher: nil sink")

	// ErrSourceClosed indicates the input source has no more events.
	ErrSourceClosed = errors.New("dispatcher: source closed")

	// ErrSourceRead indicates reading from the input source failed.
	ErrSourceRead = errors.New("dispatcher: source read failed")

	// ErrOutputIO indicates a write to the output sink failed.
	ErrOutputIO = errors.New("dispatcher: output i/o failed")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)

// OutputError describes a failed write to the output sink.
type OutputError struct {
	// Op is "write" or "sync".
	Op string

	// Output is the change being written when the failure occurred.
	Output key.Output

	// Err is the underlying device error.
	Err error
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("dispatcher: output i/o failed: %s %s: %v", e.Op, e.Output, e.Err)
}

// Unwrap returns the underlying device error.
func (e *OutputError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrOutputIO.
func (e *OutputError) Is(target error) bool {
	return target == ErrOutputIO
}
