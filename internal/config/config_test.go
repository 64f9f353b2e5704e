package config

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/keyremap/internal/clock"
	"github.com/dshills/keyremap/internal/device"
	"github.com/dshills/keyremap/internal/input/key"
	"github.com/dshills/keyremap/internal/input/keymap"
)

// memFS is an in-memory file system for testing.
type memFS map[string]string

func (m memFS) Open(string) (fs.File, error) { return nil, fs.ErrNotExist }

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }

func load(t *testing.T, path string, files memFS, env map[string]string) (*Config, error) {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	return Load(path, WithFS(files), WithEnv(env), WithSearchPaths("/home/u/.config/keyremap/config.toml", "/etc/keyremap/config.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, "", memFS{}, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.HoldWindow() != 200 {
		t.Errorf("HoldWindow() = %v, want 200ms", cfg.HoldWindow())
	}
	if cfg.Device.Name != "Keyboard Remapper" || cfg.Device.Backend != "evdev" {
		t.Errorf("Device = %+v", cfg.Device)
	}

	table, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if !reflect.DeepEqual(table.Bindings(), keymap.DefaultBindings()) {
		t.Errorf("Table() = %v, want default bindings", table.Bindings())
	}

	opts := cfg.SessionOptions()
	if opts.StartupDelay != 100*time.Millisecond || opts.SettleDelay != time.Second || opts.WaitTimeout != 0 {
		t.Errorf("SessionOptions() delays = %v, %v, %v", opts.StartupDelay, opts.SettleDelay, opts.WaitTimeout)
	}
	if opts.Backend != device.BackendEvdev {
		t.Errorf("SessionOptions().Backend = %q, want evdev", opts.Backend)
	}
}

func TestLoadTOML(t *testing.T) {
	files := memFS{"/cfg.toml": `
[device]
path = "/dev/input/event4"
backend = "uinput"
wait_timeout_ms = 3000

[remap]
hold_window_ms = 180

[[remap.bindings]]
key = "SPACE"
secondary = "LEFTCTRL"

[[remap.bindings]]
key = "CAPSLOCK"
primary = "ESC"
secondary = "RIGHTALT"

[logging]
level = "debug"
format = "json"
`}

	cfg, err := load(t, "/cfg.toml", files, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source != "/cfg.toml" {
		t.Errorf("Source = %q, want /cfg.toml", cfg.Source)
	}
	if cfg.Device.Path != "/dev/input/event4" || cfg.Device.Backend != "uinput" {
		t.Errorf("Device = %+v", cfg.Device)
	}
	if cfg.HoldWindow() != clock.Millis(180) {
		t.Errorf("HoldWindow() = %v, want 180ms", cfg.HoldWindow())
	}
	if cfg.SessionOptions().WaitTimeout != 3*time.Second {
		t.Errorf("WaitTimeout = %v, want 3s", cfg.SessionOptions().WaitTimeout)
	}
	if cfg.Device.SettleDelayMS != 1000 {
		t.Errorf("SettleDelayMS = %d, want default 1000", cfg.Device.SettleDelayMS)
	}

	table, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	want := []keymap.Binding{
		keymap.DualRole(key.CodeSpace, key.CodeLeftCtrl),
		keymap.NewBinding(key.CodeCapsLock, key.CodeEsc, key.CodeRightAlt),
	}
	if !reflect.DeepEqual(table.Bindings(), want) {
		t.Errorf("Table() = %v, want %v", table.Bindings(), want)
	}
}

func TestLoadYAMLFromSearchPath(t *testing.T) {
	files := memFS{"/etc/keyremap/config.yaml": `
remap:
  bindings:
    - key: SPACE
      secondary: LEFTSHIFT
`}

	cfg, err := load(t, "", files, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "/etc/keyremap/config.yaml" {
		t.Errorf("Source = %q", cfg.Source)
	}
	table, _ := cfg.Table()
	if _, b, ok := table.Lookup(key.CodeSpace); !ok || b.Secondary != key.CodeLeftShift {
		t.Errorf("Lookup(SPACE) = %v, %v", b, ok)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	files := memFS{
		"/home/u/.config/keyremap/config.toml": "[remap]\nhold_window_ms = 111\n",
		"/etc/keyremap/config.yaml":            "remap:\n  hold_window_ms: 222\n",
	}

	cfg, err := load(t, "", files, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remap.HoldWindowMS != 111 {
		t.Errorf("HoldWindowMS = %d, want 111 from the user file", cfg.Remap.HoldWindowMS)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	files := memFS{"/cfg.toml": "[device]\npath = \"/dev/input/event1\"\n[remap]\nhold_window_ms = 300\n"}
	env := map[string]string{
		"KEYREMAP_DEVICE":         "/dev/input/event9",
		"KEYREMAP_HOLD_WINDOW_MS": " 150 ",
		"KEYREMAP_LOG_LEVEL":      "warn",
		"KEYREMAP_BACKEND":        "uinput",
	}

	cfg, err := load(t, "/cfg.toml", files, env)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Device.Path != "/dev/input/event9" {
		t.Errorf("Device.Path = %q, want env value", cfg.Device.Path)
	}
	if cfg.Remap.HoldWindowMS != 150 {
		t.Errorf("HoldWindowMS = %d, want 150", cfg.Remap.HoldWindowMS)
	}
	if cfg.Logging.Level != "warn" || cfg.Device.Backend != "uinput" {
		t.Errorf("Logging.Level = %q, Backend = %q", cfg.Logging.Level, cfg.Device.Backend)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		files   memFS
		env     map[string]string
		check   func(error) bool
		explain string
	}{
		{
			name:    "explicit file missing",
			path:    "/nope.toml",
			files:   memFS{},
			check:   func(err error) bool { return errors.Is(err, ErrFileNotFound) },
			explain: "ErrFileNotFound",
		},
		{
			name:  "parse error",
			path:  "/bad.toml",
			files: memFS{"/bad.toml": "[remap\n"},
			check: func(err error) bool {
				var pe *ParseError
				return errors.As(err, &pe)
			},
			explain: "*ParseError",
		},
		{
			name:    "unknown key",
			path:    "/bad.yaml",
			files:   memFS{"/bad.yaml": "remap:\n  hold: 1\n"},
			check:   func(err error) bool { var pe *ParseError; return errors.As(err, &pe) },
			explain: "*ParseError",
		},
		{
			name:  "bad env integer",
			files: memFS{},
			env:   map[string]string{"KEYREMAP_HOLD_WINDOW_MS": "fast"},
			check: func(err error) bool {
				var ve *ValidationError
				return errors.As(err, &ve) && ve.Code == ErrCodeTypeMismatch
			},
			explain: "type mismatch ValidationError",
		},
		{
			name:    "hold window out of range",
			path:    "/cfg.toml",
			files:   memFS{"/cfg.toml": "[remap]\nhold_window_ms = 0\n"},
			check:   func(err error) bool { return errors.Is(err, ErrValidationFailed) },
			explain: "ErrValidationFailed",
		},
		{
			name:    "unknown backend",
			path:    "/cfg.toml",
			files:   memFS{"/cfg.toml": "[device]\nbackend = \"xinput\"\n"},
			check:   func(err error) bool { return errors.Is(err, ErrValidationFailed) },
			explain: "ErrValidationFailed",
		},
		{
			name:    "unsupported extension",
			path:    "/cfg.ini",
			files:   memFS{"/cfg.ini": ""},
			check:   func(err error) bool { return err != nil },
			explain: "an error",
		},
		{
			name:  "unknown key name",
			path:  "/cfg.toml",
			files: memFS{"/cfg.toml": "[[remap.bindings]]\nkey = \"SPACEBAR\"\nsecondary = \"LEFTCTRL\"\n"},
			check: func(err error) bool {
				var ce *keymap.ConfigurationError
				return errors.As(err, &ce) && errors.Is(err, keymap.ErrInvalidBinding)
			},
			explain: "*keymap.ConfigurationError",
		},
		{
			name:  "duplicate trigger",
			path:  "/cfg.toml",
			files: memFS{"/cfg.toml": "[[remap.bindings]]\nkey = \"SPACE\"\nsecondary = \"LEFTCTRL\"\n[[remap.bindings]]\nkey = \"space\"\nprimary = \"ESC\"\n"},
			check: func(err error) bool {
				return errors.Is(err, keymap.ErrDuplicateTrigger)
			},
			explain: "ErrDuplicateTrigger",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.path, tt.files, tt.env)
			if !tt.check(err) {
				t.Errorf("Load() error = %v, want %s", err, tt.explain)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Remap.HoldWindowMS = -1
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"
	cfg.Device.SettleDelayMS = -5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil")
	}

	paths := map[string]bool{}
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve *ValidationError
		if errors.As(e, &ve) {
			paths[ve.Path] = true
		}
	}
	for _, p := range []string{"remap.hold_window_ms", "logging.level", "logging.format", "device.settle_delay_ms"} {
		if !paths[p] {
			t.Errorf("Validate() missing error for %s", p)
		}
	}
}

func TestRequireDevice(t *testing.T) {
	cfg := Default()
	if err := cfg.RequireDevice(); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("RequireDevice() error = %v, want ErrValidationFailed", err)
	}
	cfg.Device.Path = "/dev/input/event0"
	if err := cfg.RequireDevice(); err != nil {
		t.Errorf("RequireDevice() error = %v", err)
	}
}

func TestValidationErrorCodeString(t *testing.T) {
	tests := []struct {
		code ValidationErrorCode
		want string
	}{
		{ErrCodeTypeMismatch, "type_mismatch"},
		{ErrCodeOutOfRange, "out_of_range"},
		{ErrCodeInvalidEnum, "invalid_enum"},
		{ErrCodeRequiredMissing, "required_missing"},
		{ValidationErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
