// Package tui is a prompt-driven rendering collaborator: it walks the wizard
// step by step using survey prompts, surfaces validation errors inline, and
// re-prompts the active step until it validates.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const backOption = "Go back"
const continueOption = "Continue"

// Renderer implements render.Renderer for terminal prompt sessions.
type Renderer struct {
	driver PromptDriver
	theme  Theme
}

// New constructs a TUI renderer with defaults (survey driver).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver: newSurveyDriver(),
		theme: Theme{
			StepPrefix:  "==",
			ErrorPrefix: "!",
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Run drives the controller until the review step is reached and returns the
// accumulated values.
func (r *Renderer) Run(ctx context.Context, controller *wizard.Controller, opts render.Options) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if controller == nil {
		return nil, errors.New("tui: controller is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if opts.Errors.Has() {
		if err := r.showErrors(ctx, opts.Errors); err != nil {
			return nil, err
		}
	}

	for !controller.Done() {
		if err := r.runStep(ctx, controller); err != nil {
			return nil, err
		}
	}

	if err := r.showReview(ctx, controller); err != nil {
		return nil, err
	}
	return controller.Values(), nil
}

func (r *Renderer) runStep(ctx context.Context, controller *wizard.Controller) error {
	step := controller.Step()
	progress := render.ProgressFor(controller)

	header := fmt.Sprintf("%s %s (%s)", r.theme.StepPrefix, step.Title, progress.Label)
	if err := r.driver.Info(ctx, header); err != nil {
		return err
	}
	if step.Description != "" {
		if err := r.driver.Info(ctx, step.Description); err != nil {
			return err
		}
	}

	for _, field := range controller.Fields() {
		value, err := r.promptField(ctx, controller, field)
		if err != nil {
			return err
		}
		if err := controller.SetInput(field.Name, value); err != nil {
			return err
		}
	}

	if controller.StepIndex() > 0 {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      "Next",
			Options:      []string{continueOption, backOption},
			DefaultIndex: 0,
		})
		if err != nil {
			return err
		}
		if idx == 1 {
			controller.Retreat()
			return nil
		}
	}

	if err := controller.Advance(ctx); err != nil {
		return err
	}
	if errs := controller.Errors(); errs.Has() {
		return r.showErrors(ctx, errs)
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, controller *wizard.Controller, field schema.Field) (any, error) {
	label := field.DisplayLabel()
	help := field.Description

	switch field.Type {
	case schema.FieldTypeBoolean:
		def := false
		if v, ok := controller.Input(field.Name); ok {
			if b, ok := v.(bool); ok {
				def = b
			}
		}
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: help})

	case schema.FieldTypeInteger, schema.FieldTypeNumber:
		def := ""
		if v, ok := controller.Input(field.Name); ok && v != nil {
			def = fmt.Sprint(v)
		}
		raw, err := r.driver.Input(ctx, InputConfig{Message: label, Default: def, Help: help})
		if err != nil {
			return nil, err
		}
		return coerceNumber(raw, field.Type == schema.FieldTypeInteger), nil

	default:
		if len(field.Enum) > 0 {
			return r.promptEnum(ctx, controller, field)
		}
		def := ""
		if v, ok := controller.Input(field.Name); ok {
			if s, ok := v.(string); ok {
				def = s
			}
		}
		cfg := InputConfig{
			Message:     label,
			Default:     def,
			Help:        help,
			Placeholder: field.Placeholder,
		}
		if field.Format == "password" {
			return r.driver.Password(ctx, cfg)
		}
		return r.driver.Input(ctx, cfg)
	}
}

func (r *Renderer) promptEnum(ctx context.Context, controller *wizard.Controller, field schema.Field) (any, error) {
	options := make([]string, 0, len(field.Enum))
	for _, value := range field.Enum {
		options = append(options, fmt.Sprint(value))
	}
	defaultIdx := -1
	if v, ok := controller.Input(field.Name); ok {
		if s, ok := v.(string); ok {
			defaultIdx = indexOf(options, s)
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.DisplayLabel(),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         field.Description,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(options) {
		return "", nil
	}
	return options[idx], nil
}

func (r *Renderer) showErrors(ctx context.Context, errs validation.Errors) error {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s %s", r.theme.ErrorPrefix, errs[name])); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) showReview(ctx context.Context, controller *wizard.Controller) error {
	step := controller.Step()
	if err := r.driver.Info(ctx, fmt.Sprintf("%s %s", r.theme.StepPrefix, step.Title)); err != nil {
		return err
	}

	values := controller.Values()
	for _, field := range controller.Definition().Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		display := fmt.Sprint(value)
		if field.Format == "password" {
			display = strings.Repeat("*", len(display))
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("  %s: %s", field.DisplayLabel(), display)); err != nil {
			return err
		}
	}

	if controller.Submitted() {
		return r.driver.Info(ctx, "Form submitted successfully!")
	}
	return nil
}

// coerceNumber parses numeric input eagerly so accumulated values carry real
// numbers; unparseable input is passed through for the validator to report.
func coerceNumber(raw string, integer bool) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if integer {
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return i
		}
		return raw
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return raw
}
