package liveselect

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-liveselect/pkg/host"
	"github.com/goliatone/go-liveselect/pkg/render"
)

// GuardFunc authorises a request before any widget is touched. Returning an
// HTTPError selects the response status; any other error maps to 403.
type GuardFunc func(r *http.Request) error

// FormResolver returns the host form that owns the widgets for a request.
type FormResolver func(r *http.Request) (*host.Form, error)

type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	ValueParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc

	Forms         FormResolver
	Renderer      render.Renderer
	RenderOptions render.RenderOptions
	Logger        *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/liveselect",
		SearchParam:  "q",
		LimitParam:   "limit",
		ValueParam:   "value",
		DefaultLimit: 50,
		MaxLimit:     200,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/liveselect"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.ValueParam == "" {
		opts.ValueParam = "value"
	}
	if opts.Renderer == nil {
		opts.Renderer = render.JSONRenderer{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithValueParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValueParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithForm serves every request from the same host form.
func WithForm(form *host.Form) OptionFn {
	return func(o *Options) {
		if o == nil || form == nil {
			return
		}
		o.Forms = func(*http.Request) (*host.Form, error) { return form, nil }
	}
}

// WithFormResolver picks the host form per request, e.g. from a session.
func WithFormResolver(resolver FormResolver) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Forms = resolver
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithRenderOptions(options render.RenderOptions) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RenderOptions = options
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
