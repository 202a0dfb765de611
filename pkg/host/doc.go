// Package host implements the form side of the select widget contract. A
// Form owns named fields, mounts widgets, receives their selection updates
// through explicit typed bindings and relays its validation errors back down
// to every mounted widget.
package host
