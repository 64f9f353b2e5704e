package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/dispatcher"
	"github.com/dshills/keyremap/internal/engine"
)

// Summary combines the engine and dispatcher counters of one run.
type Summary struct {
	Engine     engine.Stats
	Dispatcher dispatcher.MetricsSnapshot
}

// Summary returns the counters of the current or last run.
func (app *Application) Summary() Summary {
	app.mu.Lock()
	d := app.dispatcher
	app.mu.Unlock()

	s := Summary{Engine: app.engine.Stats()}
	if d != nil {
		s.Dispatcher = d.Metrics().Snapshot()
	}
	return s
}

func (app *Application) logSummary(d *dispatcher.Dispatcher) {
	es := app.engine.Stats()
	ds := d.Metrics().Snapshot()

	app.log.WithFields(logrus.Fields{
		"uptime":          ds.Uptime.Round(time.Second).String(),
		"key_events":      ds.KeyEvents,
		"outputs":         ds.Outputs,
		"taps":            es.Taps,
		"holds":           es.Holds,
		"timed_out":       es.TimedOut,
		"ignored_repeats": es.IgnoredRepeats,
		"malformed":       es.Malformed,
		"peak_latency":    ds.PeakLatency.String(),
	}).Info("remapping stopped")
}
