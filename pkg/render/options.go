package render

// RenderOptions describe per-request data that renderers can use without
// touching the engine state.
type RenderOptions struct {
	// Locale selects the language passed to Translator.
	Locale string
	// Translator resolves UI strings such as the search placeholder and the
	// empty-list notice. When nil the English defaults are used.
	Translator Translator
	// OnMissing decides the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
	// Endpoint is the base URL renderers point toggle and search requests at.
	Endpoint string
	// HiddenFields are emitted alongside the widget controls (CSRF tokens,
	// versions).
	HiddenFields map[string]string
	// FormErrors carries messages that could not be mapped onto a widget.
	FormErrors []string
}
