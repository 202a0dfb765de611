package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-liveselect/pkg/model"
)

// Message keys used by the bundled renderers.
const (
	KeySearchPlaceholder = "liveselect.search.placeholder"
	KeySearchSubmit      = "liveselect.search.submit"
	KeyNoOptions         = "liveselect.options.empty"
	KeySelectedCount     = "liveselect.selected.count"
	// OptionLabelKey is the option entry holding a translation key for the
	// option label.
	OptionLabelKey = "labelKey"
)

var defaultMessages = map[string]string{
	KeySearchPlaceholder: "Type to search",
	KeySearchSubmit:      "Search",
	KeyNoOptions:         "No options available.",
	KeySelectedCount:     "%d selected",
}

// ErrMissingTranslator is reported to MissingTranslationHandler when a key is
// looked up without a translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler returns the string used when key could not be
// translated. err is the translator error or ErrMissingTranslator.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Messages are the UI strings a renderer needs, already localised.
type Messages struct {
	SearchPlaceholder string
	SearchSubmit      string
	NoOptions         string
	SelectedCount     string
}

// LocalizeMessages resolves the bundled message keys.
func LocalizeMessages(opts RenderOptions, selected int) Messages {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return Messages{
		SearchPlaceholder: translate(opts.Locale, KeySearchPlaceholder, opts.Translator, onMissing),
		SearchSubmit:      translate(opts.Locale, KeySearchSubmit, opts.Translator, onMissing),
		NoOptions:         translate(opts.Locale, KeyNoOptions, opts.Translator, onMissing),
		SelectedCount:     translate(opts.Locale, KeySelectedCount, opts.Translator, onMissing, selected),
	}
}

// LocalizeOptions returns a copy of options where entries carrying a
// OptionLabelKey have their label translated. Options without a key are
// returned untouched.
func LocalizeOptions(options []model.Option, labelKey string, opts RenderOptions) []model.Option {
	out := model.CloneOptions(options)
	if labelKey == "" {
		labelKey = model.DefaultLabelKey
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	for i, option := range out {
		key := strings.TrimSpace(anyToString(option[OptionLabelKey]))
		if key == "" {
			continue
		}
		fallback := model.LabelOf(option, labelKey)
		label := translateWithFallback(opts.Locale, key, fallback, opts.Translator, onMissing)
		option[labelKey] = label
		out[i] = option
	}
	return out
}

func translate(locale, key string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	if t != nil {
		msg, err := t.Translate(locale, key, args...)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
		return onMissing(locale, key, args, err)
	}
	return onMissing(locale, key, args, ErrMissingTranslator)
}

func translateWithFallback(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	if t != nil {
		if msg, err := t.Translate(locale, key); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return onMissing(locale, key, nil, ErrMissingTranslator)
}

// missingTranslationDefault falls back to the bundled English strings and to
// the key itself for unknown keys.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	msg, ok := defaultMessages[key]
	if !ok {
		return key
	}
	if strings.Contains(msg, "%") && len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func anyToString(value any) string {
	if value == nil {
		return ""
	}
	return cast.ToString(value)
}
