package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
	"github.com/goliatone/go-liveselect/pkg/render"
	rendertemplate "github.com/goliatone/go-liveselect/pkg/render/template"
	"github.com/goliatone/go-liveselect/pkg/render/template/gotemplate"
	theme "github.com/goliatone/go-theme"
)

// Option configures the vanilla renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	theme            *theme.RendererConfig
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	stylesheet       string
	class            string
	markdown         bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain WidgetTemplate or the template named by the theme partial.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDescriptionPolicy replaces the policy used to sanitise description
// markup.
func WithDescriptionPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithMarkdownDescriptions treats widget descriptions as Markdown. The
// generated HTML still goes through the description policy.
func WithMarkdownDescriptions() Option {
	return func(cfg *config) {
		cfg.markdown = true
	}
}

// WithTheme sets an already resolved theme configuration.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithThemeSelector resolves the theme for every render through selector.
// WithTheme wins when both are set.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// WithStylesheet links the widget stylesheet from url.
func WithStylesheet(url string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(url)
	}
}

// WithClass appends extra classes to the widget wrapper.
func WithClass(class string) Option {
	return func(cfg *config) {
		cfg.class = sanitizeClassList(class)
	}
}

// Renderer renders a widget View as server-driven HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = descriptionPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws view. Options are listed in ranked order, selected options are
// flagged, and the widget's own field error is shown under the list.
func (r *Renderer) Render(ctx context.Context, view liveselect.View, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCfg, err := r.resolveTheme()
	if err != nil {
		return nil, err
	}
	themeCtx := buildThemeContext(themeCfg)

	templateName := WidgetTemplate
	if partial := strings.TrimSpace(themeCtx.Partials[WidgetPartialKey]); partial != "" {
		templateName = partial
	}

	stylesheet := r.cfg.stylesheet
	if themeCfg != nil && themeCfg.AssetURL != nil {
		if url := themeCfg.AssetURL(StylesheetAssetKey); url != "" {
			stylesheet = url
		}
	}

	data := map[string]any{
		"widget":     r.widgetContext(view, opts),
		"messages":   render.LocalizeMessages(opts, len(view.Selected)),
		"endpoint":   strings.TrimRight(opts.Endpoint, "/"),
		"hidden":     render.SortedHiddenFields(opts.HiddenFields),
		"formErrors": render.MergeFormErrors(opts.FormErrors),
		"theme":      themeCtx,
		"stylesheet": stylesheet,
	}

	result, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type item struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type widgetContext struct {
	ID          string `json:"id"`
	Model       string `json:"model"`
	Class       string `json:"class,omitempty"`
	Description string `json:"description,omitempty"`
	Search      bool   `json:"search"`
	Multi       bool   `json:"multi"`
	SearchText  string `json:"searchText"`
	Items       []item `json:"items"`
	Selected    []item `json:"selected"`
	Error       string `json:"error,omitempty"`
}

func (r *Renderer) widgetContext(view liveselect.View, opts render.RenderOptions) widgetContext {
	ranked := render.LocalizeOptions(view.SortedOptions, view.LabelKey, opts)
	items := make([]item, 0, len(ranked))
	for _, option := range ranked {
		items = append(items, r.item(view, option))
	}
	chosen := render.LocalizeOptions(view.Selected, view.LabelKey, opts)
	selected := make([]item, 0, len(chosen))
	for _, option := range chosen {
		selected = append(selected, r.item(view, option))
	}

	return widgetContext{
		ID:          controlID(view.Model),
		Model:       view.Model,
		Class:       r.cfg.class,
		Description: r.description(view.Description),
		Search:      view.Search,
		Multi:       view.Multi,
		SearchText:  view.SearchText,
		Items:       items,
		Selected:    selected,
		Error:       view.FieldError(),
	}
}

func (r *Renderer) item(view liveselect.View, option model.Option) item {
	return item{
		Value:    model.ValueText(model.ValueOf(option, view.ValueKey)),
		Label:    model.LabelOf(option, view.LabelKey),
		Selected: view.IsSelected(option),
	}
}

func (r *Renderer) resolveTheme() (*theme.RendererConfig, error) {
	if r.cfg.theme != nil {
		return r.cfg.theme, nil
	}
	if r.cfg.selector == nil {
		return nil, nil
	}
	selection, err := r.cfg.selector.Select(r.cfg.themeName, r.cfg.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: select theme %q/%q: %w", r.cfg.themeName, r.cfg.themeVariant, err)
	}
	return rendererConfigFromSelection(selection), nil
}
