package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-liveselect/pkg/render/template"
	"github.com/goliatone/go-liveselect/pkg/render/template/gotemplate"
	"github.com/goliatone/go-liveselect/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("Hello {{ name }}")},
	"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tmpl": {Data: []byte("{{ name|shout }}")},
	"use-func.tmpl":   {Data: []byte("{{ greet(name) }}")},
	"options.tmpl":    {Data: []byte("{% for o in options %}[{{ o.value|value_text }}:{{ o.label|trim }}]{% endfor %}")},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if result != "Hello Ada" {
		t.Fatalf("unexpected result %q", result)
	}
	if written != result {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", result, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_TemplateFunc(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithTemplateFunc(map[string]any{
			"greet": func(name string) string { return "hi " + name },
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("use-func", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "hi Ada" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_StructDataAndValueText(t *testing.T) {
	engine := newEngine(t)

	type option struct {
		Value any    `json:"value"`
		Label string `json:"label"`
	}
	data := struct {
		Options []option `json:"options"`
	}{
		Options: []option{{Value: 2, Label: " Blue "}, {Value: "x", Label: "Ex"}},
	}

	result, err := engine.Render("options", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[2:Blue][x:Ex]" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "1-two" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestGoTemplateRenderer_HooksAndFilters(t *testing.T) {
	engine, err := gotemplate.NewRenderer(gotemplatepkg.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	engine.RegisterPreHook(func(ctx *gotemplatepkg.HookContext) error {
		if data, ok := ctx.Data.(map[string]any); ok {
			data["name"] = strings.ToUpper(fmt.Sprint(data["name"]))
		}
		return nil
	})
	engine.RegisterPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
		return "<" + ctx.Output + ">", nil
	})

	var renderer template.TemplateRenderer = engine
	result, err := renderer.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "<Hello ADA>" {
		t.Fatalf("unexpected result %q", result)
	}

	result, err = renderer.RenderTemplate("options", map[string]any{
		"options": []map[string]any{{"value": 2.0, "label": " Blue "}},
	})
	if err != nil {
		t.Fatalf("render options: %v", err)
	}
	if result != "<[2:Blue]>" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestGoTemplateRenderer_RequiresSource(t *testing.T) {
	if _, err := gotemplate.NewRenderer(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
