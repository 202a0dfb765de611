// Package liveselect implements the state engine behind a server-driven
// select widget: the option list, the current selection, the search text used
// to rank options, and the validation messages relayed from the host form.
//
// An Engine is created once per mounted widget:
//
//	engine, err := liveselect.New(model.Config{
//		Model:   "colors",
//		Multi:   true,
//		Options: []model.Option{{"value": 1, "label": "Red"}, {"value": 2, "label": "Blue"}},
//		Default: []any{1},
//	}, liveselect.WithSelectionChannel(selections))
//
// Every Toggle emits a SelectionChanged message on the outbound channel; the
// host consumes it and writes the selection into its own field. The host
// relays validation errors back through an inbound channel the engine
// listens on (see Listen).
//
// The engine is not safe for concurrent use; callers serialise interactions
// per widget.
package liveselect
