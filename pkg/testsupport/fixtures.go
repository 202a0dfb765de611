package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
)

// ColorOptions returns a fresh copy of the option list used across package
// tests.
func ColorOptions() []model.Option {
	return []model.Option{
		{"value": 1, "label": "Red"},
		{"value": 2, "label": "Blue"},
		{"value": 3, "label": "Bread"},
		{"value": 4, "label": "Green"},
	}
}

// ColorConfig builds a widget config over ColorOptions.
func ColorConfig(modelName string, multi bool, defaults ...any) model.Config {
	return model.Config{
		Model:   modelName,
		Multi:   multi,
		Search:  true,
		Options: ColorOptions(),
		Default: defaults,
	}
}

// RecordingHost is a liveselect.Host that keeps every event it receives.
type RecordingHost struct {
	Selections []liveselect.SelectionChanged
	Bags       []liveselect.ErrorBag
	Err        error
}

var _ liveselect.Host = (*RecordingHost)(nil)

// OnSelectionChanged records evt and returns h.Err.
func (h *RecordingHost) OnSelectionChanged(evt liveselect.SelectionChanged) error {
	h.Selections = append(h.Selections, evt)
	return h.Err
}

// OnErrorsChanged records bag and returns h.Err.
func (h *RecordingHost) OnErrorsChanged(bag liveselect.ErrorBag) error {
	h.Bags = append(h.Bags, bag)
	return h.Err
}

// Last returns the most recent selection event.
func (h *RecordingHost) Last() (liveselect.SelectionChanged, bool) {
	if len(h.Selections) == 0 {
		return liveselect.SelectionChanged{}, false
	}
	return h.Selections[len(h.Selections)-1], true
}

// MustReadGoldenString reads a golden file and returns its content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
