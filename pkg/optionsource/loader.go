package optionsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-liveselect/pkg/model"
)

// maxPayloadSize caps remote payloads.
const maxPayloadSize = 4 << 20

// ErrPayloadTooLarge is returned when a remote payload exceeds the size cap.
var ErrPayloadTooLarge = errors.New("optionsource: payload too large")

// readPayload reads at most maxPayloadSize bytes and fails instead of
// truncating when the body is longer.
func readPayload(body io.Reader, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxPayloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("optionsource: read %s: %w", location, err)
	}
	if len(data) > maxPayloadSize {
		return nil, fmt.Errorf("optionsource: read %s: %w (limit %d bytes)", location, ErrPayloadTooLarge, maxPayloadSize)
	}
	return data, nil
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem resolves SourceKindFS sources against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.allowHTTP = true
		l.timeout = timeout
	}
}

// Loader reads definitions from files, an fs.FS or HTTP. HTTP is off unless
// a client or the fallback is configured.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	switch {
	case l.http != nil:
		clone := *l.http
		if l.timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = l.timeout
		}
		l.http = &clone
		l.allowHTTP = true
	case l.allowHTTP:
		l.http = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load returns the raw payload of src and the format inferred from its name
// or content type.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, Format, error) {
	if src == nil {
		return nil, FormatAuto, errors.New("optionsource: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, FormatAuto, err
	}

	switch src.Kind() {
	case SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, FormatAuto, fmt.Errorf("optionsource: read %s: %w", src.Location(), err)
		}
		return data, FormatFromPath(src.Location()), nil
	case SourceKindFS:
		if l.fs == nil {
			return nil, FormatAuto, errors.New("optionsource: filesystem is not configured")
		}
		data, err := fs.ReadFile(l.fs, src.Location())
		if err != nil {
			return nil, FormatAuto, fmt.Errorf("optionsource: read %s: %w", src.Location(), err)
		}
		return data, FormatFromPath(src.Location()), nil
	case SourceKindURL:
		if !l.allowHTTP {
			return nil, FormatAuto, errors.New("optionsource: http support disabled")
		}
		return l.fetch(ctx, src.Location())
	default:
		return nil, FormatAuto, fmt.Errorf("optionsource: unsupported source kind %q", src.Kind())
	}
}

// LoadConfig loads and decodes a widget definition.
func (l *Loader) LoadConfig(ctx context.Context, src Source) (model.Config, error) {
	data, format, err := l.Load(ctx, src)
	if err != nil {
		return model.Config{}, err
	}
	cfg, err := DecodeConfig(data, format)
	if err != nil {
		return model.Config{}, fmt.Errorf("optionsource: %s: %w", src.Location(), err)
	}
	return cfg, nil
}

// LoadOptions loads and decodes an option list.
func (l *Loader) LoadOptions(ctx context.Context, src Source) ([]model.Option, error) {
	data, format, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	options, err := DecodeOptions(data, format)
	if err != nil {
		return nil, fmt.Errorf("optionsource: %s: %w", src.Location(), err)
	}
	return options, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, FormatAuto, fmt.Errorf("optionsource: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, application/toml;q=0.8")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, FormatAuto, fmt.Errorf("optionsource: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, FormatAuto, fmt.Errorf("optionsource: fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	data, err := readPayload(resp.Body, rawURL)
	if err != nil {
		return nil, FormatAuto, err
	}

	format := FormatFromContentType(resp.Header.Get("Content-Type"))
	if format == FormatAuto {
		format = FormatFromPath(req.URL.Path)
	}
	return data, format, nil
}
