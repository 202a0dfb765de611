package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// WidgetTemplate is the template rendered for a widget, relative to
	// TemplatesFS.
	WidgetTemplate = "templates/live-select.tmpl"
	// WidgetPartialKey names the theme partial that replaces WidgetTemplate.
	WidgetPartialKey = "liveselect.widget"
	// StylesheetName is the bundled stylesheet inside AssetsFS.
	StylesheetName = "liveselect.css"
	// StylesheetAssetKey names the theme asset that replaces the bundled
	// stylesheet URL.
	StylesheetAssetKey = "liveselect.stylesheet"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so callers can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
