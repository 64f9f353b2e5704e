// Package clock provides the monotonic millisecond time source used to
// measure how long a key has been held.
//
// Hold durations must not jump when the wall clock is adjusted, so the
// production clock reads CLOCK_MONOTONIC. Tests drive a Manual clock.
package clock
