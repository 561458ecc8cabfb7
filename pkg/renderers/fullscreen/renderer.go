// Package fullscreen is a Bubble Tea rendering collaborator: a full-screen
// wizard with one text input per field, progress dots, inline validation
// errors, and a review/success view.
package fullscreen

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrCancelled signals the user quit the wizard before completing it.
var ErrCancelled = errors.New("fullscreen: cancelled")

// Renderer implements render.Renderer on top of Bubble Tea.
type Renderer struct {
	programOptions []tea.ProgramOption
}

// Option configures the fullscreen renderer.
type Option func(*Renderer)

// WithProgramOptions forwards options to the Bubble Tea program, e.g.
// tea.WithInput/tea.WithOutput in tests.
func WithProgramOptions(options ...tea.ProgramOption) Option {
	return func(r *Renderer) {
		r.programOptions = append(r.programOptions, options...)
	}
}

// New constructs a fullscreen renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "fullscreen"
}

// Run drives the controller inside a Bubble Tea program until the review
// step is confirmed, then returns the accumulated values. Seeded errors from
// opts paint on the first view; pre-filled values belong on the controller
// via wizard.WithValues.
func (r *Renderer) Run(ctx context.Context, controller *wizard.Controller, opts render.Options) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("fullscreen: context is required")
	}
	if controller == nil {
		return nil, errors.New("fullscreen: controller is required")
	}

	options := append([]tea.ProgramOption{tea.WithContext(ctx)}, r.programOptions...)
	program := tea.NewProgram(newModel(ctx, controller, opts.Errors), options...)

	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	model, ok := final.(Model)
	if !ok {
		return nil, errors.New("fullscreen: unexpected final model")
	}
	if model.Err() != nil {
		return nil, model.Err()
	}
	if model.Cancelled() {
		return nil, ErrCancelled
	}
	return controller.Values(), nil
}
