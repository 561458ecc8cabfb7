// Package render defines the contract between the wizard controller and the
// rendering collaborators that paint it.
package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer drives a wizard controller through its steps and returns the
// accumulated values once the review step is reached.
type Renderer interface {
	Name() string
	Run(ctx context.Context, controller *wizard.Controller, options Options) (map[string]any, error)
}

// Options describe per-run data renderers can use to customise their output
// without touching the wizard definition.
type Options struct {
	// Values pre-populates controls by field name. Callers should pass them
	// to the controller via wizard.WithValues so they land in accumulated
	// state before the first step is painted; renderers may also consult
	// them directly for display-only defaults.
	Values map[string]any
	// Errors seeds validation feedback by field name, surfaced inline the
	// same way a failed Advance would be.
	Errors validation.Errors
}
