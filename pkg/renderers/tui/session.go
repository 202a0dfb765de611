package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
	"github.com/goliatone/go-liveselect/pkg/render"
)

// Session drives a select widget from the terminal. Every choice is applied
// through Engine.Toggle so the host receives the same selection events a web
// client would produce.
type Session struct {
	driver       PromptDriver
	outputFormat OutputFormat
	renderOpts   render.RenderOptions
	pageSize     int
	theme        Theme
	logger       *slog.Logger
}

var _ render.Renderer = (*Session)(nil)

// New constructs a session with the survey driver and JSON output.
func New(options ...Option) *Session {
	s := &Session{
		outputFormat: OutputFormatJSON,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Name reports the renderer identifier.
func (s *Session) Name() string {
	return "tui"
}

// ContentType reports the serialisation format used by Render.
func (s *Session) ContentType() string {
	if s.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Run prompts for a search query (when the widget is searchable) and a choice
// among the ranked options, then applies the difference to engine. Errors from
// the host binding are returned unchanged.
func (s *Session) Run(ctx context.Context, engine *liveselect.Engine) error {
	if engine == nil {
		return errors.New("tui: engine is required")
	}
	cfg := engine.Config()
	messages := render.LocalizeMessages(s.renderOpts, len(engine.Selected()))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.Search {
			query, err := s.driver.Input(ctx, InputConfig{
				Message: s.prompt(messages.SearchPlaceholder),
				Default: engine.SearchText(),
			})
			if err != nil {
				return err
			}
			engine.SetSearchText(strings.TrimSpace(query))
		}

		ranked := render.LocalizeOptions(engine.SortedOptions(), cfg.LabelKey, s.renderOpts)
		if len(ranked) > 0 {
			if err := s.choose(ctx, engine, cfg, ranked); err != nil {
				return err
			}
			return s.reportError(ctx, engine)
		}

		if err := s.info(ctx, messages.NoOptions); err != nil {
			return err
		}
		if !cfg.Search {
			return ErrNoOptions
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.prompt("Search again?"), Default: true})
		if err != nil {
			return err
		}
		if !again {
			return ErrNoOptions
		}
	}
}

func (s *Session) choose(ctx context.Context, engine *liveselect.Engine, cfg model.Config, ranked []model.Option) error {
	labels := make([]string, len(ranked))
	current := make([]int, 0, len(ranked))
	for i, option := range ranked {
		labels[i] = model.LabelOf(option, cfg.LabelKey)
		if engine.IsSelected(model.ValueOf(option, cfg.ValueKey)) {
			current = append(current, i)
		}
	}
	message := s.prompt(cfg.Description)
	if message == "" {
		message = s.prompt(cfg.Model)
	}

	if !cfg.Multi {
		defaultIdx := 0
		if len(current) > 0 {
			defaultIdx = current[0]
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIdx,
			PageSize:     s.pageSize,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(ranked) {
			return fmt.Errorf("tui: selected index %d out of range", idx)
		}
		return applyPlan(engine, singlePlan(engine, cfg.ValueKey, ranked[idx]))
	}

	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  message,
		Options:  labels,
		Defaults: current,
		PageSize: s.pageSize,
	})
	if err != nil {
		return err
	}
	plan, err := multiPlan(engine, cfg.ValueKey, ranked, picked)
	if err != nil {
		return err
	}
	return applyPlan(engine, plan)
}

func applyPlan(engine *liveselect.Engine, values []any) error {
	for _, value := range values {
		if err := engine.Toggle(value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) reportError(ctx context.Context, engine *liveselect.Engine) error {
	msg, ok := engine.FieldError()
	if !ok {
		return nil
	}
	return s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) prompt(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}
	return s.theme.PromptPrefix + msg
}

// Render prints view without prompting.
func (s *Session) Render(ctx context.Context, view liveselect.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.outputFormat == OutputFormatPrettyText {
		return []byte(s.pretty(view, opts)), nil
	}

	payload := map[string]any{
		"model":    view.Model,
		"selected": model.Values(view.Selected, view.ValueKey),
	}
	if msg := view.FieldError(); msg != "" {
		payload["error"] = msg
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tui: encode selection: %w", err)
	}
	return out, nil
}

func (s *Session) pretty(view liveselect.View, opts render.RenderOptions) string {
	var b strings.Builder
	if view.Description != "" {
		fmt.Fprintf(&b, "%s\n", view.Description)
	}
	if view.SearchText != "" {
		fmt.Fprintf(&b, "search: %s\n", view.SearchText)
	}
	ranked := render.LocalizeOptions(view.SortedOptions, view.LabelKey, opts)
	if len(ranked) == 0 {
		fmt.Fprintf(&b, "%s\n", render.LocalizeMessages(opts, 0).NoOptions)
	}
	for _, option := range ranked {
		mark := " "
		if view.IsSelected(option) {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s\n", mark, model.LabelOf(option, view.LabelKey))
	}
	if msg := view.FieldError(); msg != "" {
		fmt.Fprintf(&b, "%s%s\n", s.theme.ErrorPrefix, msg)
	}
	return b.String()
}
