package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dshills/keyremap/internal/config/loader"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "KEYREMAP_"

// options holds Load settings.
type options struct {
	fs          loader.FileSystem
	env         *loader.EnvLoader
	searchPaths []string
}

// LoadOption configures Load.
type LoadOption func(*options)

// WithFS reads files from fsys instead of the OS.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv reads overrides from vars instead of the process environment.
func WithEnv(vars map[string]string) LoadOption {
	return func(o *options) {
		o.env = loader.NewEnvLoader(EnvPrefix).WithLookup(vars)
	}
}

// WithSearchPaths replaces the default search path.
func WithSearchPaths(paths ...string) LoadOption {
	return func(o *options) {
		o.searchPaths = paths
	}
}

// DefaultSearchPaths returns the files tried when no path is given:
// the user configuration directory first, then /etc/keyremap.
func DefaultSearchPaths() []string {
	var dirs []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		dirs = append(dirs, filepath.Join(dir, "keyremap"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "keyremap"))
	}
	dirs = append(dirs, "/etc/keyremap")

	var paths []string
	for _, dir := range dirs {
		for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// Load builds a configuration from defaults, the file at path, and the
// environment. An empty path searches the default locations, where a
// missing file is not an error. The result is validated.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.searchPaths == nil {
		o.searchPaths = DefaultSearchPaths()
	}

	cfg := Default()

	if path != "" {
		found, err := loadFile(o.fs, path, cfg)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		cfg.Source = path
	} else {
		for _, p := range o.searchPaths {
			found, err := loadFile(o.fs, p, cfg)
			if err != nil {
				return nil, err
			}
			if found {
				cfg.Source = p
				break
			}
		}
	}

	if err := cfg.applyEnv(o.env.Load()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(fsys loader.FileSystem, path string, cfg *Config) (bool, error) {
	l, err := loader.ForPath(fsys, path)
	if err != nil {
		return false, err
	}
	return l.LoadInto(cfg)
}

// UnmappedEnv returns KEYREMAP_* variables that match no setting.
func UnmappedEnv() []string {
	return loader.NewEnvLoader(EnvPrefix).Unmapped()
}

// applyEnv applies overrides keyed by config path. The "file" entry names
// the configuration file itself and is handled by the caller.
func (c *Config) applyEnv(values map[string]string) error {
	for path, raw := range values {
		val := strings.TrimSpace(raw)
		switch path {
		case "device.path":
			c.Device.Path = val
		case "device.name":
			c.Device.Name = val
		case "device.backend":
			c.Device.Backend = val
		case "logging.level":
			c.Logging.Level = val
		case "logging.format":
			c.Logging.Format = val
		case "device.startup_delay_ms":
			if err := parseInt(path, val, &c.Device.StartupDelayMS); err != nil {
				return err
			}
		case "device.settle_delay_ms":
			if err := parseInt(path, val, &c.Device.SettleDelayMS); err != nil {
				return err
			}
		case "device.wait_timeout_ms":
			if err := parseInt(path, val, &c.Device.WaitTimeoutMS); err != nil {
				return err
			}
		case "remap.hold_window_ms":
			if err := parseInt(path, val, &c.Remap.HoldWindowMS); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseInt(path, s string, dst *int) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return &ValidationError{
			Path:    path,
			Message: "expected an integer number of milliseconds",
			Value:   s,
			Code:    ErrCodeTypeMismatch,
		}
	}
	*dst = n
	return nil
}
