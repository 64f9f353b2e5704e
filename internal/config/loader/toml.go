package loader

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Path returns the file path.
func (l *TOMLLoader) Path() string {
	return l.path
}

// LoadInto decodes the file into v.
func (l *TOMLLoader) LoadInto(v any) (bool, error) {
	data, found, err := readFile(l.fs, l.path)
	if err != nil || !found {
		return found, err
	}
	return true, l.parse(data, v)
}

func (l *TOMLLoader) parse(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: l.path, Message: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		perr.Line, perr.Column = decodeErr.Position()
	case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
		perr.Line, perr.Column = strictErr.Errors[0].Position()
		perr.Message = "unknown key " + joinKey(strictErr.Errors[0].Key())
	}
	return perr
}

func joinKey(k toml.Key) string {
	var buf bytes.Buffer
	for i, part := range k {
		if i > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(part)
	}
	return buf.String()
}
