package tui

import (
	"log/slog"

	"github.com/goliatone/go-liveselect/pkg/render"
)

// OutputFormat controls how Render serialises a widget snapshot.
type OutputFormat string

const (
	// OutputFormatJSON emits the selected values as a JSON document.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a checklist of the ranked options.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the Render serialisation format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithRenderOptions sets locale and translator used for prompt messages.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(s *Session) {
		s.renderOpts = opts
	}
}

// WithPageSize limits how many options a prompt shows at once.
func WithPageSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
