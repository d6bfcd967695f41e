package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for documents without filters.
var ErrEmpty = errors.New("config: no filters defined")

// Load reads and maps the filter file at path.
func Load(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "config.load", Path: path, Err: err}
	}

	return Parse(path, bytes.NewReader(b))
}

// Parse decodes a filter document from r. path is used in error messages
// only.
func Parse(path string, r io.Reader) ([]Entry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc YAMLDocument
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Op: "config.parse", Path: path, Err: err}
	}

	if len(doc.Filters) == 0 {
		return nil, &Error{Op: "config.parse", Path: path, Err: ErrEmpty}
	}

	return Map(path, doc)
}
