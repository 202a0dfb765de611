package liveselect

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-liveselect/pkg/events"
)

// MissPolicy controls how Toggle reacts to a value absent from the options.
type MissPolicy string

const (
	// MissWarn logs the miss, reports it to the warning handler and still
	// emits the current selection.
	MissWarn MissPolicy = "warn"
	// MissIgnore tolerates the miss silently and still emits.
	MissIgnore MissPolicy = "ignore"
	// MissReject returns the miss to the caller and emits nothing.
	MissReject MissPolicy = "reject"
)

// DefaultsMode controls how the configured default values are applied.
type DefaultsMode string

const (
	// DefaultsToggle runs every default through Toggle, so a value listed
	// twice ends up deselected.
	DefaultsToggle DefaultsMode = "toggle"
	// DefaultsUnion selects each default once and ignores repeats.
	DefaultsUnion DefaultsMode = "union"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. A nil logger keeps the default,
// which discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSelectionChannel sets the outbound channel the engine emits
// SelectionChanged messages on.
func WithSelectionChannel(ch *events.Channel[SelectionChanged]) Option {
	return func(e *Engine) {
		if ch != nil {
			e.selections = ch
		}
	}
}

// WithMissPolicy selects the lookup-miss behaviour. Defaults to MissWarn.
func WithMissPolicy(policy MissPolicy) Option {
	return func(e *Engine) {
		switch policy {
		case MissWarn, MissIgnore, MissReject:
			e.missPolicy = policy
		}
	}
}

// WithWarningHandler receives non-fatal problems such as lookup misses.
func WithWarningHandler(fn func(error)) Option {
	return func(e *Engine) {
		e.onWarning = fn
	}
}

// WithDefaultsMode selects how Config.Default is applied. Defaults to
// DefaultsToggle.
func WithDefaultsMode(mode DefaultsMode) Option {
	return func(e *Engine) {
		switch mode {
		case DefaultsToggle, DefaultsUnion:
			e.defaultsMode = mode
		}
	}
}

// WithRanker replaces the search ranking strategy.
func WithRanker(ranker Ranker) Option {
	return func(e *Engine) {
		if ranker != nil {
			e.ranker = ranker
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
