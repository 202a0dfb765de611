package model

import internalmodel "github.com/goliatone/go-liveselect/internal/model"

const (
	DefaultValueKey = internalmodel.DefaultValueKey
	DefaultLabelKey = internalmodel.DefaultLabelKey
)

type Option = internalmodel.Option
type Config = internalmodel.Config

// SameValue reports whether two option values are loosely equal.
func SameValue(a, b any) bool { return internalmodel.SameValue(a, b) }

// ValueOf reads the value stored under key.
func ValueOf(o Option, key string) any { return internalmodel.ValueOf(o, key) }

// LabelOf reads the label stored under key as text.
func LabelOf(o Option, key string) string { return internalmodel.LabelOf(o, key) }

// ValueText renders an option value as text.
func ValueText(value any) string { return internalmodel.ValueText(value) }

// IndexOf returns the position of the first option whose key matches value.
func IndexOf(options []Option, key string, value any) int {
	return internalmodel.IndexOf(options, key, value)
}

// CloneOptions copies an option slice.
func CloneOptions(options []Option) []Option { return internalmodel.CloneOptions(options) }

// Values extracts option values under key.
func Values(options []Option, key string) []any { return internalmodel.Values(options, key) }

// DefaultLabeler derives a display label from a raw value or key.
func DefaultLabeler(name string) string { return internalmodel.DefaultLabeler(name) }
