package liveselect

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-liveselect/pkg/events"
	"github.com/goliatone/go-liveselect/pkg/model"
)

func colorOptions() []model.Option {
	return []model.Option{
		{"value": 1, "label": "Red"},
		{"value": 2, "label": "Blue"},
	}
}

func newEngine(t *testing.T, cfg model.Config, opts ...Option) *Engine {
	t.Helper()
	engine, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestToggle_SingleModeReplacesSelection(t *testing.T) {
	engine := newEngine(t, model.Config{Model: "color", Options: colorOptions()})

	steps := []struct {
		value any
		want  []model.Option
	}{
		{1, []model.Option{{"value": 1, "label": "Red"}}},
		{2, []model.Option{{"value": 2, "label": "Blue"}}},
		{2, []model.Option{}},
	}

	for idx, step := range steps {
		if err := engine.Toggle(step.value); err != nil {
			t.Fatalf("step %d: toggle: %v", idx, err)
		}
		if diff := cmp.Diff(step.want, engine.Selected()); diff != "" {
			t.Fatalf("step %d: selected mismatch (-want +got):\n%s", idx, diff)
		}
	}
}

func TestToggle_MultiModeAppendsAndRemoves(t *testing.T) {
	engine := newEngine(t, model.Config{Model: "colors", Multi: true, Options: colorOptions()})

	steps := []struct {
		value any
		want  []model.Option
	}{
		{1, []model.Option{{"value": 1, "label": "Red"}}},
		{2, []model.Option{{"value": 1, "label": "Red"}, {"value": 2, "label": "Blue"}}},
		{1, []model.Option{{"value": 2, "label": "Blue"}}},
	}

	for idx, step := range steps {
		if err := engine.Toggle(step.value); err != nil {
			t.Fatalf("step %d: toggle: %v", idx, err)
		}
		if diff := cmp.Diff(step.want, engine.Selected()); diff != "" {
			t.Fatalf("step %d: selected mismatch (-want +got):\n%s", idx, diff)
		}
	}
}

func TestToggle_SingleModeNeverHoldsMoreThanOne(t *testing.T) {
	options := []model.Option{
		{"value": "a", "label": "A"},
		{"value": "b", "label": "B"},
		{"value": "c", "label": "C"},
		{"value": "d", "label": "D"},
	}
	engine := newEngine(t, model.Config{Model: "letter", Options: options})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		value := options[rng.Intn(len(options))]["value"]
		if err := engine.Toggle(value); err != nil {
			t.Fatalf("toggle %v: %v", value, err)
		}
		if got := len(engine.Selected()); got > 1 {
			t.Fatalf("iteration %d: expected at most one selection, got %d", i, got)
		}
	}
}

func TestToggle_MultiModeDoubleToggleRestoresState(t *testing.T) {
	options := []model.Option{
		{"value": 1, "label": "One"},
		{"value": 2, "label": "Two"},
		{"value": 3, "label": "Three"},
	}
	engine := newEngine(t, model.Config{Model: "numbers", Multi: true, Options: options, Default: []any{1, 3}})

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		before := engine.Selected()
		value := options[rng.Intn(len(options))]["value"]

		if err := engine.Toggle(value); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if err := engine.Toggle(value); err != nil {
			t.Fatalf("toggle: %v", err)
		}

		if !sameValueSet(before, engine.Selected()) {
			t.Fatalf("iteration %d: double toggle of %v changed selection: before %v after %v", i, value, before, engine.Selected())
		}
		// leave a random change behind so the next pair starts elsewhere
		if err := engine.Toggle(options[rng.Intn(len(options))]["value"]); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
}

func TestToggle_LooseValueMatching(t *testing.T) {
	engine := newEngine(t, model.Config{Model: "color", Options: colorOptions()})

	if err := engine.Toggle("1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !engine.IsSelected(1) || !engine.IsSelected(1.0) {
		t.Fatalf("expected numeric string to select option 1, got %v", engine.Selected())
	}
}

func TestToggle_LooseValueMatchingKeepsBoolsAndEmptyApart(t *testing.T) {
	options := []model.Option{
		{"value": true, "label": "Yes"},
		{"value": 1, "label": "One"},
		{"value": "", "label": "None"},
		{"value": 0, "label": "Zero"},
	}
	cases := []struct {
		name  string
		value any
		want  []model.Option
	}{
		{name: "one", value: 1, want: []model.Option{{"value": 1, "label": "One"}}},
		{name: "zero", value: 0, want: []model.Option{{"value": 0, "label": "Zero"}}},
		{name: "numeric string", value: "0", want: []model.Option{{"value": 0, "label": "Zero"}}},
		{name: "bool", value: true, want: []model.Option{{"value": true, "label": "Yes"}}},
		{name: "bool text", value: "true", want: []model.Option{{"value": true, "label": "Yes"}}},
		{name: "empty", value: "", want: []model.Option{{"value": "", "label": "None"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(t, model.Config{Model: "flag", Multi: true, Options: options})
			if err := engine.Toggle(tc.value); err != nil {
				t.Fatalf("toggle: %v", err)
			}
			if diff := cmp.Diff(tc.want, engine.Selected()); diff != "" {
				t.Fatalf("selected mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggle_EmitsSelectionChanged(t *testing.T) {
	ch := events.NewChannel[SelectionChanged](EventSelectionChanged)
	var got []SelectionChanged
	if err := ch.Subscribe(func(evt SelectionChanged) error {
		got = append(got, evt)
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	engine := newEngine(t, model.Config{Model: "colors", Multi: true, Options: colorOptions()}, WithSelectionChannel(ch))
	if err := engine.Toggle(2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := engine.Toggle(1); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	want := []SelectionChanged{
		{Model: "colors", Data: []model.Option{{"value": 2, "label": "Blue"}}},
		{Model: "colors", Data: []model.Option{{"value": 2, "label": "Blue"}, {"value": 1, "label": "Red"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("emitted events mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle_ConsumerErrorPropagates(t *testing.T) {
	ch := events.NewChannel[SelectionChanged](EventSelectionChanged)
	boom := errors.New("unbound field")
	if err := ch.Subscribe(func(SelectionChanged) error { return boom }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	engine := newEngine(t, model.Config{Model: "color", Options: colorOptions()}, WithSelectionChannel(ch))
	if err := engine.Toggle(1); !errors.Is(err, boom) {
		t.Fatalf("expected consumer error, got %v", err)
	}
}

func TestToggle_LookupMissPolicies(t *testing.T) {
	t.Run("warn", func(t *testing.T) {
		var warnings []error
		emitted := 0
		ch := events.NewChannel[SelectionChanged](EventSelectionChanged)
		_ = ch.Subscribe(func(SelectionChanged) error { emitted++; return nil })

		engine := newEngine(t,
			model.Config{Model: "color", Options: colorOptions(), Default: []any{1}},
			WithSelectionChannel(ch),
			WithWarningHandler(func(err error) { warnings = append(warnings, err) }),
		)
		if err := engine.Toggle(99); err != nil {
			t.Fatalf("expected miss to be tolerated, got %v", err)
		}
		if len(warnings) != 1 || !errors.Is(warnings[0], ErrUnknownValue) {
			t.Fatalf("expected one lookup warning, got %v", warnings)
		}
		if emitted != 2 {
			t.Fatalf("expected default and miss to emit, got %d events", emitted)
		}
		if diff := cmp.Diff([]model.Option{{"value": 1, "label": "Red"}}, engine.Selected()); diff != "" {
			t.Fatalf("selection changed on miss (-want +got):\n%s", diff)
		}
	})

	t.Run("ignore", func(t *testing.T) {
		var warnings []error
		engine := newEngine(t,
			model.Config{Model: "color", Options: colorOptions()},
			WithMissPolicy(MissIgnore),
			WithWarningHandler(func(err error) { warnings = append(warnings, err) }),
		)
		if err := engine.Toggle(99); err != nil {
			t.Fatalf("expected miss to be tolerated, got %v", err)
		}
		if len(warnings) != 0 {
			t.Fatalf("expected silent miss, got %v", warnings)
		}
	})

	t.Run("reject", func(t *testing.T) {
		emitted := 0
		ch := events.NewChannel[SelectionChanged](EventSelectionChanged)
		_ = ch.Subscribe(func(SelectionChanged) error { emitted++; return nil })

		engine := newEngine(t,
			model.Config{Model: "color", Options: colorOptions()},
			WithSelectionChannel(ch),
			WithMissPolicy(MissReject),
		)
		err := engine.Toggle(99)
		var miss *LookupMissError
		if !errors.As(err, &miss) {
			t.Fatalf("expected LookupMissError, got %v", err)
		}
		if miss.Model != "color" || miss.Value != 99 {
			t.Fatalf("unexpected miss details: %#v", miss)
		}
		if emitted != 0 {
			t.Fatalf("expected no event on rejected toggle, got %d", emitted)
		}
	})
}

func TestNew_AppliesDefaultsInOrder(t *testing.T) {
	engine := newEngine(t, model.Config{Model: "colors", Multi: true, Options: colorOptions(), Default: []any{1, 2}})

	want := []model.Option{{"value": 1, "label": "Red"}, {"value": 2, "label": "Blue"}}
	if diff := cmp.Diff(want, engine.Selected()); diff != "" {
		t.Fatalf("default selection mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_DefaultsModes(t *testing.T) {
	cfg := model.Config{Model: "colors", Multi: true, Options: colorOptions(), Default: []any{1, 2, 1}}

	toggled := newEngine(t, cfg)
	if diff := cmp.Diff([]model.Option{{"value": 2, "label": "Blue"}}, toggled.Selected()); diff != "" {
		t.Fatalf("toggle defaults mismatch (-want +got):\n%s", diff)
	}

	union := newEngine(t, cfg, WithDefaultsMode(DefaultsUnion))
	want := []model.Option{{"value": 1, "label": "Red"}, {"value": 2, "label": "Blue"}}
	if diff := cmp.Diff(want, union.Selected()); diff != "" {
		t.Fatalf("union defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_DefaultsFailOnConsumerError(t *testing.T) {
	ch := events.NewChannel[SelectionChanged](EventSelectionChanged)
	boom := errors.New("no such field")
	_ = ch.Subscribe(func(SelectionChanged) error { return boom })

	_, err := New(model.Config{Model: "color", Options: colorOptions(), Default: []any{1}}, WithSelectionChannel(ch))
	if !errors.Is(err, boom) {
		t.Fatalf("expected consumer error from defaults, got %v", err)
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	cases := []struct {
		name  string
		cfg   model.Config
		field string
		want  error
	}{
		{"missing options", model.Config{Model: "color"}, "options", ErrMissingOptions},
		{"missing model", model.Config{Options: colorOptions()}, "model", ErrMissingModel},
		{"blank model", model.Config{Model: "  ", Options: colorOptions()}, "model", ErrMissingModel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tc.field || !errors.Is(err, tc.want) {
				t.Fatalf("unexpected config error: %v", err)
			}
		})
	}
}

func TestNew_EmptyOptionsAllowed(t *testing.T) {
	engine := newEngine(t, model.Config{Model: "color", Options: []model.Option{}})
	if got := len(engine.SortedOptions()); got != 0 {
		t.Fatalf("expected no options, got %d", got)
	}
	cfg := engine.Config()
	if cfg.LabelKey != "label" || cfg.ValueKey != "value" {
		t.Fatalf("expected default keys, got %q/%q", cfg.LabelKey, cfg.ValueKey)
	}
}

func TestToggle_CustomKeys(t *testing.T) {
	options := []model.Option{
		{"id": "fr", "name": "France"},
		{"id": "es", "name": "Spain"},
	}
	engine := newEngine(t, model.Config{Model: "country", ValueKey: "id", LabelKey: "name", Options: options, Default: []any{"es"}})

	if diff := cmp.Diff([]any{"es"}, engine.SelectedValues()); diff != "" {
		t.Fatalf("selected values mismatch (-want +got):\n%s", diff)
	}
}

func TestReplicateErrors_KeepsFirstMessage(t *testing.T) {
	engine := newEngine(t, model.Config{Model: "name", Options: colorOptions()})
	engine.ReplicateErrors(ErrorBag{
		"name":  {"required", "too short"},
		"email": {"invalid"},
		"empty": {},
	})

	want := map[string]string{"name": "required", "email": "invalid"}
	if diff := cmp.Diff(want, engine.Errors()); diff != "" {
		t.Fatalf("replicated errors mismatch (-want +got):\n%s", diff)
	}
	if msg, ok := engine.FieldError(); !ok || msg != "required" {
		t.Fatalf("expected field error %q, got %q (ok=%v)", "required", msg, ok)
	}

	engine.ReplicateErrors(nil)
	if len(engine.Errors()) != 0 {
		t.Fatalf("expected errors to be replaced, got %v", engine.Errors())
	}
}

func TestListen_ReplicatesInboundErrors(t *testing.T) {
	engine := newEngine(t, model.Config{Model: "colors", Options: colorOptions()})
	inbound := events.NewChannel[ErrorBag](EventErrorsReplicated)
	if err := engine.Listen(inbound); err != nil {
		t.Fatalf("listen: %v", err)
	}
	if err := inbound.Emit(ErrorBag{"colors": {"pick one"}}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if msg, _ := engine.FieldError(); msg != "pick one" {
		t.Fatalf("expected relayed error, got %q", msg)
	}
}

func sameValueSet(a, b []model.Option) bool {
	if len(a) != len(b) {
		return false
	}
	for _, option := range a {
		if model.IndexOf(b, "value", option["value"]) < 0 {
			return false
		}
	}
	return true
}
