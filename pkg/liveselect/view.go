package liveselect

import "github.com/goliatone/go-liveselect/pkg/model"

// View is a read-only snapshot of the engine consumed by renderers.
type View struct {
	Model         string            `json:"model"`
	Description   string            `json:"description,omitempty"`
	Search        bool              `json:"search"`
	Multi         bool              `json:"multi"`
	LabelKey      string            `json:"labelKey"`
	ValueKey      string            `json:"valueKey"`
	Options       []model.Option    `json:"options"`
	SortedOptions []model.Option    `json:"sortedOptions"`
	Selected      []model.Option    `json:"selected"`
	SearchText    string            `json:"searchText"`
	Errors        map[string]string `json:"errors,omitempty"`
}

// View captures the current state, ranking options against the search text.
func (e *Engine) View() View {
	return View{
		Model:         e.cfg.Model,
		Description:   e.cfg.Description,
		Search:        e.cfg.Search,
		Multi:         e.cfg.Multi,
		LabelKey:      e.cfg.LabelKey,
		ValueKey:      e.cfg.ValueKey,
		Options:       e.Options(),
		SortedOptions: e.SortedOptions(),
		Selected:      e.Selected(),
		SearchText:    e.searchText,
		Errors:        e.Errors(),
	}
}

// IsSelected reports whether option is part of the snapshot selection.
func (v View) IsSelected(option model.Option) bool {
	return model.IndexOf(v.Selected, v.ValueKey, model.ValueOf(option, v.ValueKey)) >= 0
}

// FieldError returns the message attached to the widget's model field.
func (v View) FieldError() string {
	return v.Errors[v.Model]
}
