package config

import "fmt"

// Error reports a failure while loading or mapping a filter file.
type Error struct {
	Op    string
	Path  string
	Field string // optional field path, e.g. filters[0].wp
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Op
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}

	if e.Field != "" {
		base += ": " + e.Field
	}

	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}

	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

func invalidField(path, field string, err error) error {
	return &Error{Op: "config.map", Path: path, Field: field, Err: err}
}
