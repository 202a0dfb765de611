package model

import "maps"

// Default keys used to read values and labels out of an Option.
const (
	DefaultValueKey = "value"
	DefaultLabelKey = "label"
)

// Option is a single selectable entry. The value and label live under
// configurable keys so rows coming straight from a data layer can be used
// without reshaping them.
type Option map[string]any

// Get returns the raw entry stored under key.
func (o Option) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o[key]
	return value, ok
}

// Clone returns a shallow copy of the option.
func (o Option) Clone() Option {
	if o == nil {
		return nil
	}
	return maps.Clone(o)
}

// Config is the creation contract of a select widget. It is set once when the
// widget mounts and never changes afterwards. Tags follow the attribute names
// a host passes at mount time.
type Config struct {
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Search      bool     `json:"search" yaml:"search" toml:"search"`
	Multi       bool     `json:"multi" yaml:"multi" toml:"multi"`
	LabelKey    string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	ValueKey    string   `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Options     []Option `json:"options" yaml:"options" toml:"options"`
	Model       string   `json:"model" yaml:"model" toml:"model"`
	Default     []any    `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// WithDefaults returns a copy of the config with empty keys replaced by
// DefaultValueKey and DefaultLabelKey.
func (c Config) WithDefaults() Config {
	if c.LabelKey == "" {
		c.LabelKey = DefaultLabelKey
	}
	if c.ValueKey == "" {
		c.ValueKey = DefaultValueKey
	}
	return c
}
