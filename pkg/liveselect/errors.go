package liveselect

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingOptions reports a widget created without an option list.
	ErrMissingOptions = errors.New("liveselect: options are required")
	// ErrMissingModel reports a widget created without a target model name.
	ErrMissingModel = errors.New("liveselect: model is required")
	// ErrUnknownValue reports a toggle for a value absent from the options.
	ErrUnknownValue = errors.New("liveselect: value not found in options")
)

// ConfigError describes a fatal configuration problem detected at creation.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("liveselect: invalid config %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LookupMissError is raised when Toggle receives a value that matches no
// option. It is non-fatal unless the engine runs with MissReject.
type LookupMissError struct {
	Model string
	Value any
}

func (e *LookupMissError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("liveselect: %q has no option with value %v", e.Model, e.Value)
}

func (e *LookupMissError) Unwrap() error { return ErrUnknownValue }
