package liveselect

import (
	"context"
	"strings"

	"github.com/goliatone/go-liveselect/pkg/optionsource"
)

// NewLoader constructs a definition loader for files, an fs.FS or HTTP.
func NewLoader(options ...optionsource.LoaderOption) *optionsource.Loader {
	return optionsource.NewLoader(options...)
}

// LoadConfig reads a widget definition from a file path or, when loader
// allows HTTP, from an http(s) URL.
func LoadConfig(ctx context.Context, loader *optionsource.Loader, location string) (Config, error) {
	if loader == nil {
		loader = NewLoader()
	}
	location = strings.TrimSpace(location)
	var src optionsource.Source = optionsource.SourceFromFile(location)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		parsed, err := optionsource.ParseURLSource(location)
		if err != nil {
			return Config{}, err
		}
		src = parsed
	}
	return loader.LoadConfig(ctx, src)
}
