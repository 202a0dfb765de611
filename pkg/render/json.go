package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-liveselect/pkg/liveselect"
)

// JSONRenderer serialises the widget snapshot together with the localised UI
// strings, for clients that draw the widget themselves.
type JSONRenderer struct {
	Indent string
}

type jsonPayload struct {
	liveselect.View
	Messages   Messages `json:"messages"`
	FormErrors []string `json:"formErrors,omitempty"`
}

// Name implements Renderer.
func (JSONRenderer) Name() string { return "json" }

// ContentType implements Renderer.
func (JSONRenderer) ContentType() string { return "application/json" }

// Render implements Renderer.
func (r JSONRenderer) Render(ctx context.Context, view liveselect.View, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload := jsonPayload{
		View:       view,
		Messages:   LocalizeMessages(opts, len(view.Selected)),
		FormErrors: opts.FormErrors,
	}
	payload.Options = LocalizeOptions(view.Options, view.LabelKey, opts)
	payload.SortedOptions = LocalizeOptions(view.SortedOptions, view.LabelKey, opts)

	var (
		out []byte
		err error
	)
	if r.Indent != "" {
		out, err = json.MarshalIndent(payload, "", r.Indent)
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode json view: %w", err)
	}
	return out, nil
}
