package loader

import (
	"os"
	"sort"
	"strings"
)

// EnvLoader collects configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYREMAP_")
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYREMAP_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, DefaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
		environ: os.Environ,
	}
}

// WithLookup replaces the environment with vars. Used by tests.
func (l *EnvLoader) WithLookup(vars map[string]string) *EnvLoader {
	l.lookup = func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
	l.environ = func() []string {
		env := make([]string, 0, len(vars))
		for k, v := range vars {
			env = append(env, k+"="+v)
		}
		return env
	}
	return l
}

// DefaultEnvMapping returns the default environment variable mappings.
func DefaultEnvMapping() map[string]string {
	return map[string]string{
		"KEYREMAP_CONFIG":           "file",
		"KEYREMAP_DEVICE":           "device.path",
		"KEYREMAP_DEVICE_NAME":      "device.name",
		"KEYREMAP_BACKEND":          "device.backend",
		"KEYREMAP_STARTUP_DELAY_MS": "device.startup_delay_ms",
		"KEYREMAP_SETTLE_DELAY_MS":  "device.settle_delay_ms",
		"KEYREMAP_WAIT_TIMEOUT_MS":  "device.wait_timeout_ms",
		"KEYREMAP_HOLD_WINDOW_MS":   "remap.hold_window_ms",
		"KEYREMAP_LOG_LEVEL":        "logging.level",
		"KEYREMAP_LOG_FORMAT":       "logging.format",
	}
}

// Load returns the mapped variables that are set, keyed by config path.
// Empty values are treated as set.
func (l *EnvLoader) Load() map[string]string {
	values := make(map[string]string)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			values[path] = val
		}
	}
	return values
}

// Unmapped returns prefixed variables that have no mapping, sorted.
// They usually indicate a misspelled variable name.
func (l *EnvLoader) Unmapped() []string {
	var names []string
	for _, env := range l.environ() {
		name, _, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
