package loader

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   fs,
		path: path,
	}
}

// Path returns the file path.
func (l *YAMLLoader) Path() string {
	return l.path
}

// LoadInto decodes the file into v.
func (l *YAMLLoader) LoadInto(v any) (bool, error) {
	data, found, err := readFile(l.fs, l.path)
	if err != nil || !found {
		return found, err
	}
	return true, l.parse(data, v)
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func (l *YAMLLoader) parse(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		// An empty document leaves v untouched.
		return nil
	}

	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = strings.Join(typeErr.Errors, "; ")
	}

	perr := &ParseError{Path: l.path, Message: msg, Err: err}
	if m := yamlLine.FindStringSubmatch(msg); m != nil {
		perr.Line, _ = strconv.Atoi(m[1])
	}
	return perr
}
