package model

// CloneOptions copies the slice; option maps are shared so selected entries
// stay identical to their source options.
func CloneOptions(options []Option) []Option {
	if options == nil {
		return nil
	}
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Values extracts the value of every option under key, preserving order.
func Values(options []Option, key string) []any {
	out := make([]any, 0, len(options))
	for _, option := range options {
		out = append(out, ValueOf(option, key))
	}
	return out
}
