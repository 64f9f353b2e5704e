package config

import (
	"errors"
	"strings"

	"github.com/dshills/keyremap/internal/device"
)

// MaxHoldWindowMS bounds the hold window to keep taps recognizable.
const MaxHoldWindowMS = 10000

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"auto", "text", "json"}
)

// Validate checks every setting and returns all failures joined.
// Binding errors are returned as *keymap.ConfigurationError.
func (c *Config) Validate() error {
	var errs []error

	if _, err := device.ParseBackend(c.Device.Backend); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "device.backend",
			Message: "must be evdev or uinput",
			Value:   c.Device.Backend,
			Code:    ErrCodeInvalidEnum,
		})
	}

	for _, d := range []struct {
		path  string
		value int
	}{
		{"device.startup_delay_ms", c.Device.StartupDelayMS},
		{"device.settle_delay_ms", c.Device.SettleDelayMS},
		{"device.wait_timeout_ms", c.Device.WaitTimeoutMS},
	} {
		if d.value < 0 {
			errs = append(errs, &ValidationError{
				Path:    d.path,
				Message: "must not be negative",
				Value:   d.value,
				Code:    ErrCodeOutOfRange,
			})
		}
	}

	if c.Remap.HoldWindowMS <= 0 || c.Remap.HoldWindowMS > MaxHoldWindowMS {
		errs = append(errs, &ValidationError{
			Path:    "remap.hold_window_ms",
			Message: "must be between 1 and 10000",
			Value:   c.Remap.HoldWindowMS,
			Code:    ErrCodeOutOfRange,
		})
	}

	if !oneOf(c.Logging.Level, validLevels) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of " + strings.Join(validLevels, ", "),
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	if !oneOf(c.Logging.Format, validFormats) {
		errs = append(errs, &ValidationError{
			Path:    "logging.format",
			Message: "must be one of " + strings.Join(validFormats, ", "),
			Value:   c.Logging.Format,
			Code:    ErrCodeInvalidEnum,
		})
	}

	if _, err := c.Table(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// RequireDevice reports a missing device path.
func (c *Config) RequireDevice() error {
	if c.Device.Path == "" {
		return &ValidationError{
			Path:    "device.path",
			Message: "no input device given",
			Value:   "",
			Code:    ErrCodeRequiredMissing,
		}
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	s = strings.ToLower(s)
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
