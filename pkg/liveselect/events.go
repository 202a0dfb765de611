package liveselect

import "github.com/goliatone/go-liveselect/pkg/model"

// Event names carried by the widget channels.
const (
	EventSelectionChanged = "live-select-updated"
	EventErrorsReplicated = "live-select-errors"
)

// SelectionChanged is emitted after every toggle. Data holds the selected
// options in selection order.
type SelectionChanged struct {
	Model string         `json:"model"`
	Data  []model.Option `json:"data"`
}

// ErrorBag maps field names to validation messages, as produced by the host.
type ErrorBag map[string][]string

// Host is implemented by components that embed select widgets. The host
// receives selection updates for the fields it owns and is told when its own
// validation errors change so it can relay them to mounted widgets.
type Host interface {
	OnSelectionChanged(evt SelectionChanged) error
	OnErrorsChanged(bag ErrorBag) error
}
