package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

var (
	// ErrAdvanceInFlight is returned when Advance is called while a previous
	// advance has not finished. The UI must not allow overlapping advances.
	ErrAdvanceInFlight = errors.New("wizard: advance already in flight")
)

// Direction describes the transition between the previous and current step,
// for collaborators that animate or align their output accordingly.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

// Validator checks a set of values against the wizard's field schema.
// Implementations may do slow or asynchronous work; the controller never
// mutates state until the result is in.
type Validator interface {
	ValidateSubset(ctx context.Context, values map[string]any, fields []string) validation.Errors
	ValidateAll(ctx context.Context, values map[string]any) validation.Errors
}

// SubmitFunc runs when the step before review completes with a fully valid
// schema. Returning an error blocks advancement and surfaces as a form-level
// message.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Controller owns the wizard's navigation state. It is not safe for
// concurrent use; it models a single event-driven UI component.
type Controller struct {
	def       schema.Wizard
	validator Validator
	onSubmit  SubmitFunc

	current   int
	previous  int
	values    map[string]any
	draft     map[string]any
	errs      validation.Errors
	submitted bool
	advancing bool
}

// New builds a controller for the given definition. The definition is
// validated and a schema validator compiled unless one is supplied via
// WithValidator.
func New(def schema.Wizard, options ...Option) (*Controller, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		def:    def,
		values: make(map[string]any),
		draft:  make(map[string]any),
		errs:   make(validation.Errors),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	if c.validator == nil {
		validator, err := validation.New(def)
		if err != nil {
			return nil, err
		}
		c.validator = validator
	}

	c.LoadStepValues()
	return c, nil
}

// Advance validates the active step's field set against the draft. On
// failure the index and accumulated values are untouched and the messages
// are retained for display. On success the step's draft values merge into
// the accumulated values and the index moves forward by one; completing the
// second-to-last step additionally runs full-schema validation and the
// submit callback before entering review.
func (c *Controller) Advance(ctx context.Context) error {
	if c == nil {
		return errors.New("wizard: controller is nil")
	}
	if c.advancing {
		return ErrAdvanceInFlight
	}
	c.advancing = true
	defer func() { c.advancing = false }()

	if ctx == nil {
		ctx = context.Background()
	}

	step := c.def.Steps[c.current]
	errs := c.validator.ValidateSubset(ctx, c.draft, step.Fields)
	if err := ctx.Err(); err != nil {
		return err
	}
	if errs.Has() {
		c.errs = errs
		return nil
	}

	// Merge exactly this step's fields; keys never leave the accumulated map.
	for _, name := range step.Fields {
		if value, ok := c.draft[name]; ok {
			c.values[name] = deepCopy(value)
		}
	}

	if c.current == len(c.def.Steps)-2 {
		full := c.validator.ValidateAll(ctx, c.values)
		if err := ctx.Err(); err != nil {
			return err
		}
		if full.Has() {
			c.errs = full
			return nil
		}
		if !c.submitted && c.onSubmit != nil {
			if err := c.onSubmit(ctx, c.Values()); err != nil {
				c.errs = validation.Errors{validation.FormErrorKey: err.Error()}
				return nil
			}
		}
		c.submitted = true
	}

	c.errs = make(validation.Errors)
	if c.current < len(c.def.Steps)-1 {
		c.previous = c.current
		c.current++
		c.LoadStepValues()
	}
	return nil
}

// Retreat moves back one step without validating. Accumulated values are
// never mutated; unadvanced draft edits on the abandoned step are dropped.
func (c *Controller) Retreat() {
	if c == nil || c.current == 0 {
		return
	}
	c.previous = c.current
	c.current--
	c.errs = make(validation.Errors)
	c.LoadStepValues()
}

// LoadStepValues rebuilds the draft from accumulated values for the fields
// the current step owns, falling back to field defaults on first entry.
func (c *Controller) LoadStepValues() {
	if c == nil {
		return
	}
	c.draft = make(map[string]any)
	for _, field := range c.Fields() {
		if value, ok := c.values[field.Name]; ok {
			c.draft[field.Name] = deepCopy(value)
			continue
		}
		if field.Default != nil {
			c.draft[field.Name] = deepCopy(field.Default)
		}
	}
}

// SetInput records a draft value for a field the active step owns. Unknown
// names are rejected so collaborators fail loudly on wiring mistakes.
func (c *Controller) SetInput(name string, value any) error {
	if c == nil {
		return errors.New("wizard: controller is nil")
	}
	for _, owned := range c.def.Steps[c.current].Fields {
		if owned == name {
			c.draft[name] = value
			return nil
		}
	}
	return fmt.Errorf("wizard: step %q does not own field %q", c.def.Steps[c.current].ID, name)
}

// Input returns the current draft value for a field.
func (c *Controller) Input(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c.draft[name]
	return value, ok
}

// Definition returns the wizard definition the controller was built from.
func (c *Controller) Definition() schema.Wizard {
	return c.def
}

// Step returns the active step.
func (c *Controller) Step() schema.Step {
	return c.def.Steps[c.current]
}

// StepIndex returns the active step index.
func (c *Controller) StepIndex() int {
	return c.current
}

// PreviousIndex returns the step index before the last transition.
func (c *Controller) PreviousIndex() int {
	return c.previous
}

// StepCount returns the number of steps, review included.
func (c *Controller) StepCount() int {
	return len(c.def.Steps)
}

// Direction reports whether the last transition moved forward or backward.
func (c *Controller) Direction() Direction {
	if c.current < c.previous {
		return DirectionBackward
	}
	return DirectionForward
}

// Fields returns the schema fields the active step owns, in step order.
func (c *Controller) Fields() []schema.Field {
	return c.def.StepFields(c.current)
}

// Values returns a deep copy of the accumulated values collected so far.
func (c *Controller) Values() map[string]any {
	return cloneValues(c.values)
}

// Errors returns the messages from the last failed validation. Empty after
// a successful Advance.
func (c *Controller) Errors() validation.Errors {
	if c == nil {
		return nil
	}
	return c.errs
}

// FormError returns the form-level message, such as a failed submit callback.
func (c *Controller) FormError() string {
	return c.Errors().Form()
}

// Submitted reports whether the submit callback has completed. It flips to
// true exactly once, on completing the step before review.
func (c *Controller) Submitted() bool {
	return c != nil && c.submitted
}

// Done reports whether the controller has reached the final review step.
func (c *Controller) Done() bool {
	return c != nil && c.current == len(c.def.Steps)-1
}
