// Package formwizard assembles the pieces of a multi-step form wizard:
// definitions (pkg/schema), the step-navigation controller (pkg/wizard),
// field validation (pkg/validation), and terminal rendering collaborators
// (pkg/renderers). The root package re-exports the common types and offers a
// one-call entry point.
package formwizard

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/fullscreen"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Wizard re-exports the definition type consumed by controllers.
type Wizard = schema.Wizard

// Field re-exports the field schema type.
type Field = schema.Field

// Step re-exports the step type.
type Step = schema.Step

// Errors re-exports the field->message validation result.
type Errors = validation.Errors

// Controller re-exports the step-navigation controller.
type Controller = wizard.Controller

// Options re-exports per-run renderer options.
type Options = render.Options

// NewController builds a step controller for a definition.
func NewController(def schema.Wizard, options ...wizard.Option) (*wizard.Controller, error) {
	return wizard.New(def, options...)
}

// Renderer resolves a rendering collaborator by name ("tui" or
// "fullscreen").
func Renderer(name string) (render.Renderer, error) {
	switch name {
	case "tui", "":
		return tui.New(), nil
	case "fullscreen":
		return fullscreen.New(), nil
	default:
		return nil, fmt.Errorf("formwizard: unknown renderer %q", name)
	}
}

// Run builds a controller for the definition and drives it with the named
// renderer, returning the accumulated values once the review step is
// reached. It is the simplest entry point for callers that just want a
// completed form.
func Run(ctx context.Context, def schema.Wizard, rendererName string, options ...wizard.Option) (map[string]any, error) {
	controller, err := wizard.New(def, options...)
	if err != nil {
		return nil, err
	}
	renderer, err := Renderer(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Run(ctx, controller, render.Options{})
}
