// Package dispatcher moves key events from an input source through a
// Handler and onto an output sink.
//
// # Event Flow
//
// Run reads one raw event at a time from the Source:
//
//  1. Events whose type is not TypeKey are dropped without being forwarded
//  2. The key event is timestamped with the configured clock
//  3. The Handler resolves it into zero or more output key changes
//  4. Each change is written to the Sink followed by exactly one Sync
//
// Writing a frame marker after every change keeps the host from observing
// two changes as simultaneous.
//
// # Errors
//
// A failed write or sync stops the loop and is reported as an *OutputError,
// which matches ErrOutputIO with errors.Is. Remaining changes of the same
// event are not written. End of input (io.EOF or ErrSourceClosed) ends Run
// without error.
//
// # Thread Safety
//
// Dispatch and Flush serialize on an internal mutex, so the teardown path
// may flush release events while the read loop is stopping.
package dispatcher
