package render

import (
	"context"

	"github.com/goliatone/go-liveselect/pkg/liveselect"
)

// Renderer converts a widget snapshot into a byte representation (HTML,
// plain text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view liveselect.View, options RenderOptions) ([]byte, error)
}
