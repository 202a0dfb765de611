package render

import (
	"strings"

	"github.com/spf13/cast"
)

// TemplateI18nConfig configures the translation helpers exposed to templates.
type TemplateI18nConfig struct {
	// LocaleKey names the entry holding the locale when templates pass a map
	// instead of a locale string. Defaults to "locale".
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for template engines:
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(localeSrc any, key string, args ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			return translate(resolveLocale(localeSrc, localeKey), key, t, onMissing, args...)
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case RenderOptions:
		return data.Locale
	case *RenderOptions:
		if data == nil {
			return ""
		}
		return data.Locale
	}
	values, err := cast.ToStringMapE(src)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(values[key]))
}
