package model

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// SameValue compares two option values loosely. Numbers match across types
// and against numeric strings (1, 1.0 and "1" are the same value), other
// scalars compare by their string form. Values decoded from JSON, YAML or a
// submitted HTML form therefore match values supplied by Go callers.
// Booleans and empty strings never take the numeric path, so true is not 1
// and "" is not 0.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	af, aok := numeric(a)
	bf, bok := numeric(b)
	if aok && bok {
		return af == bf
	}

	if isScalar(a) && isScalar(b) {
		as, aerr := cast.ToStringE(a)
		bs, berr := cast.ToStringE(b)
		if aerr == nil && berr == nil {
			return as == bs
		}
	}

	return reflect.DeepEqual(a, b)
}

// ValueOf reads the value stored under key.
func ValueOf(o Option, key string) any {
	value, _ := o.Get(key)
	return value
}

// LabelOf reads the label stored under key as text.
func LabelOf(o Option, key string) string {
	value, ok := o.Get(key)
	if !ok || value == nil {
		return ""
	}
	label, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return label
}

// ValueText renders a value as text, used for HTML attributes and form posts.
func ValueText(value any) string {
	if value == nil {
		return ""
	}
	text, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return text
}

// IndexOf returns the position of the first option whose key matches value.
func IndexOf(options []Option, key string, value any) int {
	for idx, option := range options {
		candidate, ok := option.Get(key)
		if !ok {
			continue
		}
		if SameValue(candidate, value) {
			return idx
		}
	}
	return -1
}

func numeric(v any) (float64, bool) {
	switch typed := v.(type) {
	case bool:
		return 0, false
	case string:
		if strings.TrimSpace(typed) == "" {
			return 0, false
		}
	case json.Number:
		if typed == "" {
			return 0, false
		}
	default:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
		default:
			return 0, false
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isScalar(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
