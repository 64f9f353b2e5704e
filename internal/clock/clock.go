package clock

import (
	"strconv"
	"sync"
	"time"
)

// Millis is a monotonic timestamp or duration in milliseconds.
type Millis int64

// Duration converts m to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// String returns the value with an "ms" suffix.
func (m Millis) String() string {
	return strconv.FormatInt(int64(m), 10) + "ms"
}

// FromDuration converts d to whole milliseconds, truncating.
func FromDuration(d time.Duration) Millis {
	return Millis(d / time.Millisecond)
}

// Since returns now - start, or zero if the clock went backwards.
func Since(start, now Millis) Millis {
	if now < start {
		return 0
	}
	return now - start
}

// Clock reports the current monotonic time.
type Clock interface {
	Now() Millis
}

// Func adapts a function to the Clock interface.
type Func func() Millis

// Now calls f.
func (f Func) Now() Millis {
	return f()
}

// Manual is a Clock whose time only moves when told to.
// It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now Millis
}

// NewManual creates a manual clock starting at start.
func NewManual(start Millis) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() Millis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t Millis) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d Millis) Millis {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
	return m.now
}
