package dispatcher

import (
	"sync/atomic"
	"time"
)

// Metrics tracks dispatch activity.
type Metrics struct {
	eventsRead  atomic.Uint64
	keyEvents   atomic.Uint64
	ignored     atomic.Uint64
	malformed   atomic.Uint64
	outputs     atomic.Uint64
	syncMarkers atomic.Uint64
	writeErrors atomic.Uint64

	// Peak time spent in the handler plus output writes, in nanoseconds.
	peakLatency atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) recordLatency(d time.Duration) {
	ns := d.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if ns <= current {
			return
		}
		if m.peakLatency.CompareAndSwap(current, ns) {
			return
		}
	}
}

// MetricsSnapshot is a point-in-time view of dispatch metrics.
type MetricsSnapshot struct {
	EventsRead  uint64
	KeyEvents   uint64
	Ignored     uint64
	Malformed   uint64
	Outputs     uint64
	SyncMarkers uint64
	WriteErrors uint64
	PeakLatency time.Duration
	Uptime      time.Duration
}

// Snapshot returns the current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsRead:  m.eventsRead.Load(),
		KeyEvents:   m.keyEvents.Load(),
		Ignored:     m.ignored.Load(),
		Malformed:   m.malformed.Load(),
		Outputs:     m.outputs.Load(),
		SyncMarkers: m.syncMarkers.Load(),
		WriteErrors: m.writeErrors.Load(),
		PeakLatency: time.Duration(m.peakLatency.Load()),
		Uptime:      time.Since(m.startTime),
	}
}
