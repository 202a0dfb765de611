// Package liveselect is the top-level entry point for select widgets: it
// re-exports the engine types and offers one-call helpers for mounting a
// widget on a host form and rendering it.
package liveselect

import (
	"context"
	"fmt"

	"github.com/goliatone/go-liveselect/pkg/host"
	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
	"github.com/goliatone/go-liveselect/pkg/render"
	"github.com/goliatone/go-liveselect/pkg/renderers/vanilla"
	theme "github.com/goliatone/go-theme"
)

// Config is the creation contract of a widget.
type Config = model.Config

// Option is a single selectable entry.
type Option = model.Option

// Engine owns the state of one widget.
type Engine = liveselect.Engine

// Host receives selection changes from widgets.
type Host = liveselect.Host

// SelectionChanged is the outbound selection event.
type SelectionChanged = liveselect.SelectionChanged

// ErrorBag maps field names to validation messages.
type ErrorBag = liveselect.ErrorBag

// RenderOptions describes per-request rendering overrides.
type RenderOptions = render.RenderOptions

// Form is the host component that owns bound fields and mounted widgets.
type Form = host.Form

// ErrWidgetNotMounted is returned when rendering a model the form never
// mounted.
var ErrWidgetNotMounted = host.ErrWidgetNotMounted

// New builds a standalone engine. Selection events go nowhere until a
// consumer subscribes to the engine's selection channel.
func New(cfg Config, opts ...liveselect.Option) (*Engine, error) {
	return liveselect.New(cfg, opts...)
}

// NewForm creates a host form identified by name.
func NewForm(name string, opts ...host.FormOption) *Form {
	return host.NewForm(name, opts...)
}

// MountValues binds the widget model to target on form and mounts it, so
// target always holds the selected values.
func MountValues(form *Form, cfg Config, target *[]any, opts ...liveselect.Option) (*Engine, error) {
	host.BindValues(form, cfg.Model, cfg.ValueKey, target)
	return form.Mount(cfg, opts...)
}

// RenderHTML relays pending host errors and renders the widget with the
// built-in HTML renderer.
func RenderHTML(ctx context.Context, form *Form, modelName string, options RenderOptions, rendererOpts ...vanilla.Option) ([]byte, error) {
	engine, ok := form.Widget(modelName)
	if !ok {
		return nil, fmt.Errorf("liveselect: render %q on %q: %w", modelName, form.Name(), ErrWidgetNotMounted)
	}
	if err := form.Rendering(); err != nil {
		return nil, err
	}
	r, err := vanilla.New(rendererOpts...)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, engine.View(), options)
}

// WithThemeSelector hands a go-theme selector to the HTML renderer; name and
// variant pick the theme at render time.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) vanilla.Option {
	return vanilla.WithThemeSelector(selector, name, variant)
}
