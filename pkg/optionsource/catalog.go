package optionsource

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/goliatone/go-liveselect/pkg/model"
)

// Catalog holds widget definitions keyed by model name.
type Catalog struct {
	configs map[string]model.Config
	sources map[string]string
}

// LoadCatalog walks fsys and decodes every JSON, YAML and TOML file as one
// widget definition. Two files defining the same model fail the load.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{
		configs: make(map[string]model.Config),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		format := FormatFromPath(path)
		if format == FormatAuto {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("optionsource: read %s: %w", path, err)
		}
		cfg, err := DecodeConfig(data, format)
		if err != nil {
			return fmt.Errorf("optionsource: %s: %w", path, err)
		}

		name := strings.TrimSpace(cfg.Model)
		if name == "" {
			return fmt.Errorf("optionsource: file %s defines no model", path)
		}
		if previous, exists := catalog.sources[name]; exists {
			return fmt.Errorf("optionsource: duplicate model %q (files %s and %s)", name, previous, path)
		}
		catalog.configs[name] = cfg
		catalog.sources[name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Config returns the definition for model.
func (c *Catalog) Config(modelName string) (model.Config, bool) {
	if c == nil {
		return model.Config{}, false
	}
	cfg, ok := c.configs[modelName]
	if !ok {
		return model.Config{}, false
	}
	cfg.Options = model.CloneOptions(cfg.Options)
	cfg.Default = slices.Clone(cfg.Default)
	return cfg, true
}

// Source returns the file a model was loaded from.
func (c *Catalog) Source(modelName string) string {
	if c == nil {
		return ""
	}
	return c.sources[modelName]
}

// Models lists the loaded model names sorted.
func (c *Catalog) Models() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.configs))
	for name := range c.configs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Empty reports whether the catalog holds any definitions.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.configs) == 0
}
