package clock

import "time"

var epoch = time.Now()

// fallbackNow uses the monotonic component of time.Now.
func fallbackNow() Millis {
	return FromDuration(time.Since(epoch))
}
