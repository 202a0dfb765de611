package liveselect

import (
	"log/slog"
	"maps"
	"strings"

	"github.com/goliatone/go-liveselect/pkg/events"
	"github.com/goliatone/go-liveselect/pkg/model"
)

// Engine owns the mutable state of one select widget.
type Engine struct {
	cfg        model.Config
	options    []model.Option
	selected   []model.Option
	searchText string
	errors     map[string]string

	ranker       Ranker
	missPolicy   MissPolicy
	defaultsMode DefaultsMode
	onWarning    func(error)
	logger       *slog.Logger
	selections   *events.Channel[SelectionChanged]
}

// New validates cfg, builds the engine and applies the configured defaults.
// Errors returned by the selection consumer while defaults are applied fail
// construction.
func New(cfg model.Config, opts ...Option) (*Engine, error) {
	if cfg.Options == nil {
		return nil, &ConfigError{Field: "options", Err: ErrMissingOptions}
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, &ConfigError{Field: "model", Err: ErrMissingModel}
	}

	cfg = cfg.WithDefaults()
	cfg.Options = model.CloneOptions(cfg.Options)
	cfg.Default = append([]any(nil), cfg.Default...)

	e := &Engine{
		cfg:          cfg,
		options:      cfg.Options,
		selected:     []model.Option{},
		errors:       map[string]string{},
		ranker:       SimilarityRanker,
		missPolicy:   MissWarn,
		defaultsMode: DefaultsToggle,
		logger:       discardLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.selections == nil {
		e.selections = events.NewChannel[SelectionChanged](EventSelectionChanged)
	}

	if err := e.applyDefaults(cfg.Default); err != nil {
		return nil, err
	}
	return e, nil
}

// Toggle flips the selection state of value. In single mode a new value
// replaces the current selection and a selected value clears it; in multi
// mode values are appended or removed while the rest keep their order. The
// resulting selection is emitted to the host and the host's error, if any, is
// returned.
func (e *Engine) Toggle(value any) error {
	key := e.cfg.ValueKey
	selectedAt := model.IndexOf(e.selected, key, value)
	optionAt := model.IndexOf(e.options, key, value)

	switch {
	case selectedAt < 0 && optionAt < 0:
		miss := &LookupMissError{Model: e.cfg.Model, Value: value}
		switch e.missPolicy {
		case MissReject:
			return miss
		case MissWarn:
			e.warn(miss)
		}
	case !e.cfg.Multi:
		if selectedAt >= 0 {
			e.selected = []model.Option{}
		} else {
			e.selected = []model.Option{e.options[optionAt]}
		}
	case selectedAt >= 0:
		e.selected = append(e.selected[:selectedAt:selectedAt], e.selected[selectedAt+1:]...)
	default:
		e.selected = append(e.selected, e.options[optionAt])
	}

	return e.emitSelection()
}

func (e *Engine) applyDefaults(values []any) error {
	for _, value := range values {
		if e.defaultsMode == DefaultsUnion && e.IsSelected(value) {
			continue
		}
		if err := e.Toggle(value); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) emitSelection() error {
	evt := SelectionChanged{
		Model: e.cfg.Model,
		Data:  model.CloneOptions(e.selected),
	}
	e.logger.Debug("liveselect: selection changed",
		"model", evt.Model,
		"selected", len(evt.Data),
	)
	return e.selections.Emit(evt)
}

func (e *Engine) warn(err error) {
	e.logger.Warn("liveselect: toggle ignored",
		"model", e.cfg.Model,
		"error", err,
	)
	if e.onWarning != nil {
		e.onWarning(err)
	}
}

// ReplicateErrors replaces the widget error state with the first message of
// every field in bag.
func (e *Engine) ReplicateErrors(bag ErrorBag) {
	replicated := make(map[string]string, len(bag))
	for field, messages := range bag {
		if len(messages) == 0 {
			continue
		}
		replicated[field] = messages[0]
	}
	e.errors = replicated
}

// Listen makes the engine the consumer of the inbound error channel.
func (e *Engine) Listen(ch *events.Channel[ErrorBag]) error {
	return ch.Subscribe(func(bag ErrorBag) error {
		e.ReplicateErrors(bag)
		return nil
	})
}

// SelectionChannel exposes the outbound channel so a host can subscribe
// after construction.
func (e *Engine) SelectionChannel() *events.Channel[SelectionChanged] {
	return e.selections
}

// SetSearchText stores the current search query.
func (e *Engine) SetSearchText(text string) {
	e.searchText = text
}

// SearchText returns the current search query.
func (e *Engine) SearchText() string {
	return e.searchText
}

// Config returns the creation config with defaults applied.
func (e *Engine) Config() model.Config {
	cfg := e.cfg
	cfg.Options = model.CloneOptions(cfg.Options)
	cfg.Default = append([]any(nil), cfg.Default...)
	return cfg
}

// Options returns the full option list in source order.
func (e *Engine) Options() []model.Option {
	return model.CloneOptions(e.options)
}

// Selected returns the selected options in selection order.
func (e *Engine) Selected() []model.Option {
	return model.CloneOptions(e.selected)
}

// SelectedValues returns the values of the selected options.
func (e *Engine) SelectedValues() []any {
	return model.Values(e.selected, e.cfg.ValueKey)
}

// IsSelected reports whether value is currently selected.
func (e *Engine) IsSelected(value any) bool {
	return model.IndexOf(e.selected, e.cfg.ValueKey, value) >= 0
}

// Errors returns a copy of the replicated error messages.
func (e *Engine) Errors() map[string]string {
	return maps.Clone(e.errors)
}

// FieldError returns the message attached to the widget's own model field.
func (e *Engine) FieldError() (string, bool) {
	msg, ok := e.errors[e.cfg.Model]
	return msg, ok
}
