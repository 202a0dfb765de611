package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	lscomponent "github.com/goliatone/go-liveselect/components/liveselect"
	"github.com/goliatone/go-liveselect/pkg/host"
	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
	"github.com/goliatone/go-liveselect/pkg/optionsource"
	"github.com/goliatone/go-liveselect/pkg/render"
	"github.com/goliatone/go-liveselect/pkg/renderers/tui"
	"github.com/goliatone/go-liveselect/pkg/renderers/vanilla"
)

func main() {
	source := flag.String("source", "", "widget definition path or URL (json, yaml or toml)")
	catalog := flag.String("catalog", "", "directory of widget definitions")
	openapiDoc := flag.String("openapi", "", "OpenAPI document path or URL")
	field := flag.String("field", "", "Schema.property to read from the OpenAPI document")
	modelName := flag.String("model", "", "widget model; picks a catalog entry or names the OpenAPI field")
	rendererName := flag.String("renderer", "vanilla", "renderer to use: vanilla, json or tui")
	optionsFile := flag.String("options", "", "option list path or URL replacing the definition's options")
	search := flag.String("search", "", "initial search text")
	pageSize := flag.Int("page-size", 10, "options per page in interactive mode")
	output := flag.String("output", "", "output file (stdout if empty)")
	serve := flag.String("serve", "", "serve the widget over HTTP on this address")
	pretty := flag.Bool("pretty", false, "print a checklist instead of JSON after an interactive session")
	verbose := flag.Bool("verbose", false, "log widget events to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	loader := optionsource.NewLoader(optionsource.WithHTTPFallback(15 * time.Second))
	cfg, rules, err := loadWidget(ctx, loader, widgetFlags{
		source:  *source,
		catalog: *catalog,
		openapi: *openapiDoc,
		field:   *field,
		model:   *modelName,
	})
	if err != nil {
		log.Fatalf("Failed to load widget: %v", err)
	}
	if *optionsFile != "" {
		src, err := parseSource(*optionsFile)
		if err != nil {
			log.Fatalf("Invalid options source: %v", err)
		}
		if cfg.Options, err = loader.LoadOptions(ctx, src); err != nil {
			log.Fatalf("Failed to load options: %v", err)
		}
	}

	form := host.NewForm("liveselect-cli", host.WithLogger(logger))
	var values []any
	host.BindValues(form, cfg.Model, cfg.ValueKey, &values)

	engine, err := form.Mount(cfg, liveselect.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to mount widget: %v", err)
	}
	engine.SetSearchText(strings.TrimSpace(*search))

	format := tui.OutputFormatJSON
	if *pretty {
		format = tui.OutputFormatPrettyText
	}
	session := tui.New(
		tui.WithOutputFormat(format),
		tui.WithPageSize(*pageSize),
		tui.WithLogger(logger),
	)
	registry, err := buildRegistry(session)
	if err != nil {
		log.Fatalf("Failed to build renderers: %v", err)
	}
	renderer, err := registry.Get(*rendererName)
	if err != nil {
		log.Fatalf("Unknown renderer %q (available: %s)", *rendererName, strings.Join(registry.List(), ", "))
	}

	if *serve != "" {
		if err := serveWidget(ctx, *serve, form, renderer, logger); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	if interactive, ok := renderer.(*tui.Session); ok {
		if err := interactive.Run(ctx, engine); err != nil {
			log.Fatalf("Selection aborted: %v", err)
		}
		if len(rules) > 0 {
			ok, err := form.Validate(rules...)
			if err != nil {
				log.Fatalf("Failed to validate: %v", err)
			}
			if !ok {
				logger.Warn("selection is invalid", "model", cfg.Model, "errors", form.Errors())
			}
		}
	}

	if err := form.Rendering(); err != nil {
		log.Fatalf("Failed to relay errors: %v", err)
	}
	out, err := renderer.Render(ctx, engine.View(), render.RenderOptions{})
	if err != nil {
		log.Fatalf("Failed to render widget: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Widget written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

type widgetFlags struct {
	source  string
	catalog string
	openapi string
	field   string
	model   string
}

func loadWidget(ctx context.Context, loader *optionsource.Loader, flags widgetFlags) (model.Config, []host.Rule, error) {
	switch {
	case flags.openapi != "":
		return loadOpenAPIWidget(ctx, loader, flags)
	case flags.catalog != "":
		cat, err := optionsource.LoadCatalog(os.DirFS(flags.catalog))
		if err != nil {
			return model.Config{}, nil, err
		}
		name := flags.model
		if name == "" {
			models := cat.Models()
			if len(models) != 1 {
				return model.Config{}, nil, fmt.Errorf("catalog has %d widgets, pick one with -model (%s)", len(models), strings.Join(models, ", "))
			}
			name = models[0]
		}
		cfg, ok := cat.Config(name)
		if !ok {
			return model.Config{}, nil, fmt.Errorf("catalog has no widget %q", name)
		}
		return cfg, nil, nil
	case flags.source != "":
		src, err := parseSource(flags.source)
		if err != nil {
			return model.Config{}, nil, err
		}
		cfg, err := loader.LoadConfig(ctx, src)
		if err != nil {
			return model.Config{}, nil, err
		}
		if flags.model != "" {
			cfg.Model = flags.model
		}
		return cfg, nil, nil
	default:
		return model.Config{}, nil, errors.New("one of -source, -catalog or -openapi is required")
	}
}

func loadOpenAPIWidget(ctx context.Context, loader *optionsource.Loader, flags widgetFlags) (model.Config, []host.Rule, error) {
	schema, property, ok := strings.Cut(flags.field, ".")
	if !ok || schema == "" || property == "" {
		return model.Config{}, nil, fmt.Errorf("-field must look like Schema.property, got %q", flags.field)
	}
	src, err := parseSource(flags.openapi)
	if err != nil {
		return model.Config{}, nil, err
	}
	data, _, err := loader.Load(ctx, src)
	if err != nil {
		return model.Config{}, nil, err
	}
	field, err := optionsource.FromOpenAPI(ctx, data, schema, property)
	if err != nil {
		return model.Config{}, nil, err
	}

	name := flags.model
	if name == "" {
		name = property
	}
	return field.Config(name), field.Rules(name), nil
}

func parseSource(raw string) (optionsource.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, errors.New("empty source")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return optionsource.ParseURLSource(path)
	}
	return optionsource.SourceFromFile(path), nil
}

func buildRegistry(session *tui.Session) (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	for _, r := range []render.Renderer{html, render.JSONRenderer{Indent: "  "}, session} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func serveWidget(ctx context.Context, addr string, form *host.Form, renderer render.Renderer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mount, err := lscomponent.RegisterRoutes(mux, "/",
		lscomponent.WithForm(form),
		lscomponent.WithRenderer(renderer),
		lscomponent.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	for _, name := range form.Widgets() {
		log.Printf("Serving %s at http://%s%s/%s", name, addr, mount, name)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
