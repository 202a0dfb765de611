package host

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-liveselect/pkg/events"
	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
	"github.com/goliatone/go-liveselect/pkg/render"
)

// Binder writes a selection into a host field.
type Binder func(data []model.Option) error

// SyncFunc is invoked after a field was written so the surrounding framework
// can push the new value to the client.
type SyncFunc func(field string, data []model.Option)

// FormOption configures a Form.
type FormOption func(*Form)

// WithLogger sets the structured logger used by the form and passed to
// widgets mounted through it.
func WithLogger(logger *slog.Logger) FormOption {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSync registers the input-sync hook.
func WithSync(fn SyncFunc) FormOption {
	return func(f *Form) {
		f.onSync = fn
	}
}

type widget struct {
	engine *liveselect.Engine
	errors *events.Channel[liveselect.ErrorBag]
}

// Form is a host component embedding select widgets.
type Form struct {
	name    string
	binders map[string]Binder
	values  map[string][]model.Option
	widgets map[string]widget
	order   []string
	errors  map[string][]string
	onSync  SyncFunc
	logger  *slog.Logger
}

var _ liveselect.Host = (*Form)(nil)

// NewForm creates a host identified by name. The name shows up in binding
// errors.
func NewForm(name string, opts ...FormOption) *Form {
	f := &Form{
		name:    strings.TrimSpace(name),
		binders: make(map[string]Binder),
		values:  make(map[string][]model.Option),
		widgets: make(map[string]widget),
		errors:  make(map[string][]string),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Name returns the host identity.
func (f *Form) Name() string {
	return f.name
}

// Bind registers the binder for field, replacing any previous one.
func (f *Form) Bind(field string, fn Binder) {
	field = strings.TrimSpace(field)
	if field == "" || fn == nil {
		return
	}
	f.binders[field] = fn
}

// BindOptions binds field to a slice of options.
func BindOptions(f *Form, field string, target *[]model.Option) {
	if target == nil {
		return
	}
	f.Bind(field, func(data []model.Option) error {
		*target = model.CloneOptions(data)
		return nil
	})
}

// BindValues binds field to the values of the selected options.
func BindValues(f *Form, field, valueKey string, target *[]any) {
	if target == nil {
		return
	}
	if valueKey == "" {
		valueKey = model.DefaultValueKey
	}
	f.Bind(field, func(data []model.Option) error {
		*target = model.Values(data, valueKey)
		return nil
	})
}

// Bound reports whether field has a binder.
func (f *Form) Bound(field string) bool {
	_, ok := f.binders[field]
	return ok
}

// Mount builds a widget for cfg and wires both of its channels to the form:
// selections flow into the form binders, errors flow back into the widget.
// Defaults are applied during mount, so their selections are bound before
// Mount returns.
func (f *Form) Mount(cfg model.Config, opts ...liveselect.Option) (*liveselect.Engine, error) {
	name := strings.TrimSpace(cfg.Model)
	if _, exists := f.widgets[name]; exists && name != "" {
		return nil, fmt.Errorf("host: widget for %q already mounted on %q", name, f.name)
	}

	selections := events.NewChannel[liveselect.SelectionChanged](liveselect.EventSelectionChanged)
	if err := selections.Subscribe(f.OnSelectionChanged); err != nil {
		return nil, err
	}

	engineOpts := append([]liveselect.Option{
		liveselect.WithLogger(f.logger),
		liveselect.WithSelectionChannel(selections),
	}, opts...)
	engine, err := liveselect.New(cfg, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("host: mount %q on %q: %w", name, f.name, err)
	}

	inbound := events.NewChannel[liveselect.ErrorBag](liveselect.EventErrorsReplicated)
	if err := engine.Listen(inbound); err != nil {
		return nil, err
	}

	f.widgets[name] = widget{engine: engine, errors: inbound}
	f.order = append(f.order, name)
	f.logger.Debug("host: widget mounted", "host", f.name, "model", name)
	return engine, nil
}

// Widget returns the engine mounted for model.
func (f *Form) Widget(model string) (*liveselect.Engine, bool) {
	w, ok := f.widgets[model]
	return w.engine, ok
}

// Widgets lists mounted model names in mount order.
func (f *Form) Widgets() []string {
	return slices.Clone(f.order)
}

// OnSelectionChanged writes the selection into the bound field and syncs it.
func (f *Form) OnSelectionChanged(evt liveselect.SelectionChanged) error {
	binder, ok := f.binders[evt.Model]
	if !ok {
		err := &BindingError{Field: evt.Model, Host: f.name}
		f.logger.Error("host: selection for unbound field", "host", f.name, "field", evt.Model)
		return err
	}
	if err := binder(model.CloneOptions(evt.Data)); err != nil {
		return fmt.Errorf("host: bind %q on %q: %w", evt.Model, f.name, err)
	}
	f.values[evt.Model] = model.CloneOptions(evt.Data)
	if f.onSync != nil {
		f.onSync(evt.Model, model.CloneOptions(evt.Data))
	}
	return nil
}

// Value returns the last selection written into field.
func (f *Form) Value(field string) []model.Option {
	return model.CloneOptions(f.values[field])
}

// AddError appends a validation message for field.
func (f *Form) AddError(field, message string) {
	field = strings.TrimSpace(field)
	message = strings.TrimSpace(message)
	if field == "" || message == "" {
		return
	}
	f.errors[field] = append(f.errors[field], message)
}

// ClearErrors empties the error bag without relaying.
func (f *Form) ClearErrors() {
	f.errors = make(map[string][]string)
}

// Errors returns a copy of the error bag.
func (f *Form) Errors() liveselect.ErrorBag {
	out := make(liveselect.ErrorBag, len(f.errors))
	for field, messages := range f.errors {
		out[field] = slices.Clone(messages)
	}
	return out
}

// OnErrorsChanged replaces the error bag and relays it to every widget,
// including an empty bag so widgets drop stale messages.
func (f *Form) OnErrorsChanged(bag liveselect.ErrorBag) error {
	f.errors = make(map[string][]string, len(bag))
	for field, messages := range bag {
		f.errors[field] = slices.Clone(messages)
	}
	return f.relay()
}

// MapErrors normalises a server error payload (JSON pointer or dotted paths)
// onto the mounted widget models and relays the result. Messages that match
// no widget are returned as form-level errors.
func (f *Form) MapErrors(payload map[string][]string) ([]string, error) {
	fields := make([]string, 0, len(f.order)+len(f.binders))
	fields = append(fields, f.order...)
	for field := range f.binders {
		fields = append(fields, field)
	}
	mapping := render.MapErrorPayload(fields, payload)
	if err := f.OnErrorsChanged(liveselect.ErrorBag(mapping.Fields)); err != nil {
		return nil, err
	}
	return mapping.Form, nil
}

// Rendering is the pre-render hook: it relays the bag only when it holds
// messages.
func (f *Form) Rendering() error {
	if len(f.errors) == 0 {
		return nil
	}
	return f.relay()
}

func (f *Form) relay() error {
	bag := f.Errors()
	for _, name := range f.order {
		if err := f.widgets[name].errors.Emit(bag); err != nil {
			return fmt.Errorf("host: relay errors to %q: %w", name, err)
		}
	}
	f.logger.Debug("host: errors relayed", "host", f.name, "fields", slices.Sorted(maps.Keys(bag)))
	return nil
}
