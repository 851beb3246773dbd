package config

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a setting name is not recognised.
var ErrUnknownKey = errors.New("unknown setting")

// LoadError reports a settings document that could not be read or parsed.
// Defaults are in effect whenever it is returned.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("settings file %s is unreadable, using defaults: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValueError reports a value that cannot be assigned to a setting.
type ValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Reason)
}
