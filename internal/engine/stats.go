package engine

import "sync/atomic"

// counters tracks engine activity.
type counters struct {
	events         atomic.Uint64
	emitted        atomic.Uint64
	taps           atomic.Uint64
	holds          atomic.Uint64
	timedOut       atomic.Uint64
	ignoredRepeats atomic.Uint64
	duplicates     atomic.Uint64
	malformed      atomic.Uint64
}

// Stats is a point-in-time view of engine activity.
type Stats struct {
	// Events is the number of transitions handled, malformed ones included.
	Events uint64

	// Emitted is the number of output key changes produced.
	Emitted uint64

	// Taps counts dual-role releases resolved to the primary function.
	Taps uint64

	// Holds counts secondary function assertions, by repeat or co-activation.
	Holds uint64

	// TimedOut counts releases after the hold window with nothing asserted.
	TimedOut uint64

	// IgnoredRepeats counts repeats that arrived inside the hold window.
	IgnoredRepeats uint64

	// Duplicates counts Down events for keys already held.
	Duplicates uint64

	// Malformed counts transitions with values outside {0, 1, 2}.
	Malformed uint64
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Events:         e.stats.events.Load(),
		Emitted:        e.stats.emitted.Load(),
		Taps:           e.stats.taps.Load(),
		Holds:          e.stats.holds.Load(),
		TimedOut:       e.stats.timedOut.Load(),
		IgnoredRepeats: e.stats.ignoredRepeats.Load(),
		Duplicates:     e.stats.duplicates.Load(),
		Malformed:      e.stats.malformed.Load(),
	}
}
