package optionsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-liveselect/pkg/model"
)

// Mapping renames fields of a remote payload into option keys.
type Mapping struct {
	// ListKey names the envelope entry holding the list. Defaults to "data".
	ListKey string
	// ValueField and LabelField name the remote fields copied into
	// model.DefaultValueKey and model.DefaultLabelKey. Empty keeps the payload
	// as-is.
	ValueField string
	LabelField string
}

// FetchOptions GETs url and decodes a JSON option list. Both a bare array and
// an envelope such as {"data":[{"value":1,"label":"Red"}]} are accepted.
func FetchOptions(ctx context.Context, client *http.Client, url string, mapping Mapping) ([]model.Option, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("optionsource: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("optionsource: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("optionsource: fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := readPayload(resp.Body, url)
	if err != nil {
		return nil, err
	}
	return decodeRemote(body, mapping)
}

func decodeRemote(body []byte, mapping Mapping) ([]model.Option, error) {
	var list []model.Option
	if err := json.Unmarshal(body, &list); err != nil {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("optionsource: decode options: %w", err)
		}
		key := strings.TrimSpace(mapping.ListKey)
		if key == "" {
			key = "data"
		}
		raw, ok := envelope[key]
		if !ok {
			return nil, fmt.Errorf("optionsource: payload has no %q list", key)
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("optionsource: decode %q list: %w", key, err)
		}
	}
	if list == nil {
		return nil, errors.New("optionsource: payload holds no options")
	}
	return remap(list, mapping), nil
}

func remap(list []model.Option, mapping Mapping) []model.Option {
	if mapping.ValueField == "" && mapping.LabelField == "" {
		return list
	}
	out := make([]model.Option, 0, len(list))
	for _, option := range list {
		mapped := option.Clone()
		if mapping.ValueField != "" {
			if value, ok := option.Get(mapping.ValueField); ok {
				mapped[model.DefaultValueKey] = value
			}
		}
		if mapping.LabelField != "" {
			if label, ok := option.Get(mapping.LabelField); ok {
				mapped[model.DefaultLabelKey] = label
			}
		}
		out = append(out, mapped)
	}
	return out
}
