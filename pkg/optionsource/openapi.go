package optionsource

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cast"

	"github.com/goliatone/go-liveselect/pkg/host"
	"github.com/goliatone/go-liveselect/pkg/model"
)

// EnumLabelsExtension holds display labels for enum values, either as a list
// parallel to the enum or as a map keyed by the value text.
const EnumLabelsExtension = "x-enum-labels"

// SearchThreshold is the option count from which derived widgets enable
// search.
const SearchThreshold = 8

// ErrNoEnum is returned when the property carries no enum list.
var ErrNoEnum = errors.New("optionsource: property has no enum")

// Field describes a select widget derived from an OpenAPI schema property.
type Field struct {
	Schema      string
	Property    string
	Description string
	Multi       bool
	Required    bool
	MinItems    int
	// MaxItems is zero when the array is unbounded.
	MaxItems int
	Options  []model.Option
	Default  []any
}

// FromOpenAPI reads property of the component schema named schema. A string
// enum becomes a single select; an array of enum items becomes a multi select
// bounded by minItems and maxItems.
func FromOpenAPI(ctx context.Context, data []byte, schema, property string) (Field, error) {
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Field{}, fmt.Errorf("optionsource: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return Field{}, fmt.Errorf("optionsource: openapi document has no components")
	}

	ref, ok := doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return Field{}, fmt.Errorf("optionsource: schema %q not found", schema)
	}
	propRef, ok := ref.Value.Properties[property]
	if !ok || propRef == nil || propRef.Value == nil {
		return Field{}, fmt.Errorf("optionsource: property %q not found on schema %q", property, schema)
	}
	prop := propRef.Value

	field := Field{
		Schema:      schema,
		Property:    property,
		Description: firstNonEmpty(prop.Description, prop.Title),
		Required:    slices.Contains(ref.Value.Required, property),
	}

	enumSchema := prop
	if prop.Type != nil && prop.Type.Is(openapi3.TypeArray) {
		if prop.Items == nil || prop.Items.Value == nil {
			return Field{}, fmt.Errorf("optionsource: array property %q has no items schema", property)
		}
		field.Multi = true
		field.MinItems = int(prop.MinItems)
		if prop.MaxItems != nil {
			field.MaxItems = int(*prop.MaxItems)
		}
		enumSchema = prop.Items.Value
	}
	if len(enumSchema.Enum) == 0 {
		return Field{}, fmt.Errorf("%w: %s.%s", ErrNoEnum, schema, property)
	}

	labels := enumLabels(enumSchema.Extensions[EnumLabelsExtension])
	if labels.len() == 0 {
		labels = enumLabels(prop.Extensions[EnumLabelsExtension])
	}
	for idx, value := range enumSchema.Enum {
		label := labels.lookup(idx, value)
		if label == "" {
			label = model.DefaultLabeler(cast.ToString(value))
		}
		field.Options = append(field.Options, model.Option{
			model.DefaultValueKey: value,
			model.DefaultLabelKey: label,
		})
	}

	switch def := prop.Default.(type) {
	case nil:
	case []any:
		field.Default = slices.Clone(def)
	default:
		field.Default = []any{def}
	}
	return field, nil
}

// Config builds a widget definition bound to modelName.
func (f Field) Config(modelName string) model.Config {
	return model.Config{
		Description: f.Description,
		Search:      len(f.Options) >= SearchThreshold,
		Multi:       f.Multi,
		Options:     model.CloneOptions(f.Options),
		Model:       modelName,
		Default:     slices.Clone(f.Default),
	}
}

// Rules returns the host validation rules implied by the schema.
func (f Field) Rules(field string) []host.Rule {
	var rules []host.Rule
	if f.Required || f.MinItems > 0 {
		rules = append(rules, host.Required(field, ""))
	}
	if f.MinItems > 1 {
		rules = append(rules, host.MinSelected(field, f.MinItems, ""))
	}
	if f.MaxItems > 0 {
		rules = append(rules, host.MaxSelected(field, f.MaxItems, ""))
	}
	return rules
}

type labelSet struct {
	list  []string
	byKey map[string]string
}

func (s labelSet) lookup(idx int, value any) string {
	if s.byKey != nil {
		return s.byKey[cast.ToString(value)]
	}
	if idx < len(s.list) {
		return s.list[idx]
	}
	return ""
}

func enumLabels(raw any) labelSet {
	switch v := raw.(type) {
	case []any:
		list := make([]string, len(v))
		for i, item := range v {
			list[i] = strings.TrimSpace(cast.ToString(item))
		}
		return labelSet{list: list}
	case map[string]any:
		byKey := make(map[string]string, len(v))
		for key, item := range v {
			byKey[key] = strings.TrimSpace(cast.ToString(item))
		}
		return labelSet{byKey: byKey}
	default:
		return labelSet{}
	}
}

func (s labelSet) len() int {
	return len(s.list) + len(s.byKey)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
