package liveselect

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-liveselect/pkg/host"
	"github.com/goliatone/go-liveselect/pkg/renderers/vanilla"
)

func TestStylesheetFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(StylesheetFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".ls-") {
		t.Fatalf("expected widget selectors in stylesheet")
	}
}

func TestEmbeddedTemplatesContainsWidget(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), vanilla.WidgetTemplate); err != nil {
		t.Fatalf("expected widget template to be readable: %v", err)
	}
}

func TestMountValuesAndRenderHTML(t *testing.T) {
	form := NewForm("profile")
	var colors []any
	cfg := Config{
		Model:   "colors",
		Multi:   true,
		Options: []Option{{"value": 1, "label": "Red"}, {"value": 2, "label": "Blue"}},
		Default: []any{2},
	}
	if _, err := MountValues(form, cfg, &colors); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if diff := cmp.Diff([]any{2}, colors); diff != "" {
		t.Fatalf("bound values mismatch (-want +got):\n%s", diff)
	}

	html, err := RenderHTML(context.Background(), form, "colors", RenderOptions{Endpoint: "/widgets/colors"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Red", "Blue", `action="/widgets/colors/toggle"`} {
		if !strings.Contains(string(html), want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderHTMLUnknownWidget(t *testing.T) {
	_, err := RenderHTML(context.Background(), NewForm("profile"), "missing", RenderOptions{})
	if !errors.Is(err, ErrWidgetNotMounted) {
		t.Fatalf("expected ErrWidgetNotMounted, got %v", err)
	}
	if errors.Is(err, host.ErrUnboundField) {
		t.Fatalf("a missing widget is not an unbound field: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.yaml")
	body := "model: colors\nmulti: true\noptions:\n  - {value: 1, label: Red}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadConfig(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "colors" || !cfg.Multi || len(cfg.Options) != 1 {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}
