package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-liveselect/pkg/model"
	"github.com/goliatone/go-liveselect/pkg/optionsource"
)

type violation struct {
	file     string
	location string
	message  string
}

// lintDefinition reports definition problems that would either fail widget
// creation or silently misbehave at runtime.
func lintDefinition(file string, raw []byte) []violation {
	cfg, err := optionsource.DecodeConfig(raw, optionsource.FormatFromPath(file))
	if err != nil {
		return []violation{{file: file, location: "document", message: err.Error()}}
	}

	var result []violation
	add := func(path []string, format string, args ...any) {
		result = append(result, violation{
			file:     file,
			location: formatLocation(path),
			message:  fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(cfg.Model) == "" {
		add([]string{"model"}, "model is required")
	}
	if cfg.Options == nil {
		add([]string{"options"}, "options are required")
		return result
	}

	cfg = cfg.WithDefaults()
	seen := make([]any, 0, len(cfg.Options))
	for idx, option := range cfg.Options {
		path := []string{"options", strconv.Itoa(idx)}
		value, ok := option.Get(cfg.ValueKey)
		if !ok {
			add(path, "option has no %q key", cfg.ValueKey)
			continue
		}
		if _, ok := option.Get(cfg.LabelKey); !ok {
			add(path, "option has no %q key", cfg.LabelKey)
		}
		for _, prior := range seen {
			if model.SameValue(prior, value) {
				add(path, "duplicate value %v", value)
				break
			}
		}
		seen = append(seen, value)
	}

	for idx, value := range cfg.Default {
		if model.IndexOf(cfg.Options, cfg.ValueKey, value) < 0 {
			add([]string{"default", strconv.Itoa(idx)}, "default %v matches no option", value)
		}
	}
	if !cfg.Multi && len(cfg.Default) > 1 {
		add([]string{"default"}, "single select lists %d defaults; only the last one stays selected", len(cfg.Default))
	}

	return result
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
