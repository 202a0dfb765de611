package liveselect

import (
	"io/fs"

	"github.com/goliatone/go-liveselect/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// StylesheetFS exposes the bundled widget stylesheet so Go applications can
// serve it without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(liveselect.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return vanilla.AssetsFS()
}
