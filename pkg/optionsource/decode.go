package optionsource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-liveselect/pkg/model"
)

// Format names a definition encoding.
type Format string

const (
	// FormatAuto tries JSON, then YAML, then TOML.
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrEmptyDefinition is returned for blank payloads.
var ErrEmptyDefinition = errors.New("optionsource: definition is empty")

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// FormatFromContentType infers the format from an HTTP content type.
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return FormatJSON
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	case strings.Contains(ct, "toml"):
		return FormatTOML
	default:
		return FormatAuto
	}
}

// DecodeConfig decodes a widget definition. Options and defaults keep the
// scalar types of the encoding; value matching in the engine is loose so a
// YAML int and a JSON float compare equal.
func DecodeConfig(data []byte, format Format) (model.Config, error) {
	var cfg model.Config
	if err := decode(data, format, &cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// DecodeOptions decodes a bare option list, or an object holding the list
// under "options" or "data".
func DecodeOptions(data []byte, format Format) ([]model.Option, error) {
	var list []model.Option
	if err := decode(data, format, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Options []model.Option `json:"options" yaml:"options" toml:"options"`
		Data    []model.Option `json:"data" yaml:"data" toml:"data"`
	}
	if err := decode(data, format, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Options != nil {
		return wrapped.Options, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("optionsource: no options or data list found")
}

func decode(data []byte, format Format, target any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDefinition
	}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("optionsource: decode json: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("optionsource: decode yaml: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("optionsource: decode toml: %w", err)
		}
		return nil
	case FormatAuto:
		if err := json.Unmarshal(data, target); err == nil {
			return nil
		}
		if err := yaml.Unmarshal(data, target); err == nil {
			return nil
		}
		if err := toml.Unmarshal(data, target); err == nil {
			return nil
		}
		return fmt.Errorf("optionsource: invalid JSON, YAML or TOML")
	default:
		return fmt.Errorf("optionsource: unsupported format %q", format)
	}
}
