package config

import (
	"time"

	"github.com/dshills/keyremap/internal/clock"
	"github.com/dshills/keyremap/internal/device"
	"github.com/dshills/keyremap/internal/engine"
	"github.com/dshills/keyremap/internal/input/keymap"
)

// Config is the complete keyremap configuration.
type Config struct {
	Device  DeviceConfig  `toml:"device" yaml:"device"`
	Remap   RemapConfig   `toml:"remap" yaml:"remap"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`

	// Source is the file the configuration was read from, if any.
	Source string `toml:"-" yaml:"-"`
}

// DeviceConfig selects the physical keyboard and the virtual output.
type DeviceConfig struct {
	Path           string `toml:"path" yaml:"path"`
	Name           string `toml:"name" yaml:"name"`
	Backend        string `toml:"backend" yaml:"backend"`
	StartupDelayMS int    `toml:"startup_delay_ms" yaml:"startup_delay_ms"`
	SettleDelayMS  int    `toml:"settle_delay_ms" yaml:"settle_delay_ms"`
	WaitTimeoutMS  int    `toml:"wait_timeout_ms" yaml:"wait_timeout_ms"`
}

// RemapConfig holds the binding table and its timing.
type RemapConfig struct {
	HoldWindowMS int           `toml:"hold_window_ms" yaml:"hold_window_ms"`
	Bindings     []keymap.Spec `toml:"bindings" yaml:"bindings"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Name:           device.DefaultName,
			Backend:        string(device.BackendEvdev),
			StartupDelayMS: int(device.DefaultStartupDelay / time.Millisecond),
			SettleDelayMS:  int(device.DefaultSettleDelay / time.Millisecond),
		},
		Remap: RemapConfig{
			HoldWindowMS: int(engine.DefaultHoldWindow),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// HoldWindow returns the tap/hold threshold.
func (c *Config) HoldWindow() clock.Millis {
	return clock.Millis(c.Remap.HoldWindowMS)
}

// Table builds the binding table, falling back to the built-in bindings
// when none are configured.
func (c *Config) Table() (*keymap.Table, error) {
	if len(c.Remap.Bindings) == 0 {
		return keymap.DefaultTable(), nil
	}
	return keymap.LoadSpecs(c.Remap.Bindings)
}

// SessionOptions converts the device settings for device.Open.
// The backend must already be validated.
func (c *Config) SessionOptions() device.SessionOptions {
	backend, _ := device.ParseBackend(c.Device.Backend)
	return device.SessionOptions{
		Path:         c.Device.Path,
		Name:         c.Device.Name,
		Backend:      backend,
		StartupDelay: millis(c.Device.StartupDelayMS),
		SettleDelay:  millis(c.Device.SettleDelayMS),
		WaitTimeout:  millis(c.Device.WaitTimeoutMS),
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
