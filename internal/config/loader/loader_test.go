package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

type testBinding struct {
	Key       string `toml:"key" yaml:"key"`
	Secondary string `toml:"secondary" yaml:"secondary"`
}

type testConfig struct {
	Remap struct {
		HoldWindowMS int           `toml:"hold_window_ms" yaml:"hold_window_ms"`
		Bindings     []testBinding `toml:"bindings" yaml:"bindings"`
	} `toml:"remap" yaml:"remap"`
	Name string `toml:"name" yaml:"name"`
}

func TestTOMLLoader_LoadInto(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[remap]
hold_window_ms = 250

[[remap.bindings]]
key = "SPACE"
secondary = "LEFTCTRL"
`)

	cfg := testConfig{Name: "kept"}
	found, err := NewTOMLLoaderWithFS(memfs, "/config.toml").LoadInto(&cfg)
	if err != nil {
		t.Fatalf("LoadInto() error = %v", err)
	}
	if !found {
		t.Fatal("LoadInto() found = false, want true")
	}
	if cfg.Remap.HoldWindowMS != 250 {
		t.Errorf("HoldWindowMS = %d, want 250", cfg.Remap.HoldWindowMS)
	}
	want := []testBinding{{Key: "SPACE", Secondary: "LEFTCTRL"}}
	if !reflect.DeepEqual(cfg.Remap.Bindings, want) {
		t.Errorf("Bindings = %+v, want %+v", cfg.Remap.Bindings, want)
	}
	if cfg.Name != "kept" {
		t.Errorf("Name = %q, want preserved %q", cfg.Name, "kept")
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	var cfg testConfig
	found, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").LoadInto(&cfg)
	if err != nil || found {
		t.Errorf("LoadInto() = %v, %v, want false, nil", found, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"syntax", "[remap]\nhold_window_ms = = 3\n", 2},
		{"unknown key", "[remap]\nhold_window = 3\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := NewMemFS()
			memfs.AddFile("/bad.toml", tt.content)

			var cfg testConfig
			_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").LoadInto(&cfg)

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("LoadInto() error = %v, want *ParseError", err)
			}
			if parseErr.Path != "/bad.toml" {
				t.Errorf("Path = %q, want /bad.toml", parseErr.Path)
			}
			if parseErr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", parseErr.Line, tt.wantLine)
			}
		})
	}
}

func TestYAMLLoader_LoadInto(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
remap:
  hold_window_ms: 180
  bindings:
    - key: SPACE
      secondary: LEFTCTRL
`)

	var cfg testConfig
	found, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").LoadInto(&cfg)
	if err != nil || !found {
		t.Fatalf("LoadInto() = %v, %v, want true, nil", found, err)
	}
	if cfg.Remap.HoldWindowMS != 180 {
		t.Errorf("HoldWindowMS = %d, want 180", cfg.Remap.HoldWindowMS)
	}
	if len(cfg.Remap.Bindings) != 1 || cfg.Remap.Bindings[0].Secondary != "LEFTCTRL" {
		t.Errorf("Bindings = %+v", cfg.Remap.Bindings)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yml", "")

	cfg := testConfig{Name: "kept"}
	found, err := NewYAMLLoaderWithFS(memfs, "/empty.yml").LoadInto(&cfg)
	if err != nil || !found {
		t.Fatalf("LoadInto() = %v, %v, want true, nil", found, err)
	}
	if cfg.Name != "kept" {
		t.Errorf("Name = %q, want %q", cfg.Name, "kept")
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "remap:\n  hold_windw_ms: 3\n")

	var cfg testConfig
	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").LoadInto(&cfg)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("LoadInto() error = %v, want *ParseError", err)
	}
	if parseErr.Line != 2 {
		t.Errorf("Line = %d, want 2", parseErr.Line)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/etc/keyremap/config.toml", "*loader.TOMLLoader", false},
		{"/etc/keyremap/config.YAML", "*loader.YAMLLoader", false},
		{"config.yml", "*loader.YAMLLoader", false},
		{"config.json", "", true},
	}

	for _, tt := range tests {
		l, err := ForPath(NewMemFS(), tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if got := reflect.TypeOf(l).String(); got != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
		if l.Path() != tt.path {
			t.Errorf("Path() = %q, want %q", l.Path(), tt.path)
		}
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("KEYREMAP_").WithLookup(map[string]string{
		"KEYREMAP_DEVICE":         "/dev/input/event3",
		"KEYREMAP_HOLD_WINDOW_MS": "150",
		"KEYREMAP_LOG_LEVEL":      "",
		"KEYREMAP_HOLDWINDOW":     "9",
		"HOME":                    "/root",
	})

	want := map[string]string{
		"device.path":          "/dev/input/event3",
		"remap.hold_window_ms": "150",
		"logging.level":        "",
	}
	if got := l.Load(); !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}

	if got := l.Unmapped(); !reflect.DeepEqual(got, []string{"KEYREMAP_HOLDWINDOW"}) {
		t.Errorf("Unmapped() = %v, want [KEYREMAP_HOLDWINDOW]", got)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 2, Column: 5, Message: "bad"}, "parse error in a.toml at line 2, column 5: bad"},
		{&ParseError{Path: "a.yaml", Line: 3, Message: "bad"}, "parse error in a.yaml at line 3: bad"},
		{&ParseError{Path: "a.yaml", Message: "bad"}, "parse error in a.yaml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
