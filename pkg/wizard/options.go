package wizard

import "github.com/goliatone/go-formwizard/pkg/validation"

// Option configures a Controller during construction.
type Option func(*Controller)

// WithValidator overrides the compiled schema validator.
func WithValidator(validator Validator) Option {
	return func(c *Controller) {
		if validator != nil {
			c.validator = validator
		}
	}
}

// WithOnSubmit registers the callback invoked when the step before review
// completes with a fully valid schema.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(c *Controller) {
		c.onSubmit = fn
	}
}

// WithValues seeds the accumulated values, pre-filling controls on entry.
func WithValues(values map[string]any) Option {
	return func(c *Controller) {
		c.values = cloneValues(values)
	}
}

// WithErrors seeds validation messages, for example server-provided feedback
// carried over from a previous session of the same widget.
func WithErrors(errs validation.Errors) Option {
	return func(c *Controller) {
		if len(errs) == 0 {
			return
		}
		c.errs = make(validation.Errors).Merge(errs)
	}
}
