package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned by a session when the widget has nothing to
	// choose from and searching again was declined.
	ErrNoOptions = errors.New("tui: no options available")
)
