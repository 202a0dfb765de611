// Package model defines the option and configuration types shared by the
// select engine, the host form and the renderers. Implementations live in
// internal/model; this package re-exports them. Options are plain maps so the
// value and label keys stay configurable per widget, and values are compared
// loosely so numbers decoded from JSON match numeric strings posted by a
// browser.
package model
