package host

import (
	"errors"
	"fmt"
)

// ErrUnboundField is wrapped by BindingError.
var ErrUnboundField = errors.New("host: field is not bound")

// ErrWidgetNotMounted reports a lookup for a model no widget was mounted for.
var ErrWidgetNotMounted = errors.New("host: widget is not mounted")

// BindingError reports a selection update for a field the host never bound.
// It is a configuration error and must not be swallowed.
type BindingError struct {
	Field string
	Host  string
}

func (e *BindingError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("host: unable to find a bound field named %q, is it bound on the %q component?", e.Field, e.Host)
}

func (e *BindingError) Unwrap() error { return ErrUnboundField }
