package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func signupDefinition() schema.Wizard {
	return schema.Wizard{
		ID: "signup",
		Fields: []schema.Field{
			{Name: "firstName", Type: schema.FieldTypeString, Required: true, Label: "First name"},
			{Name: "lastName", Type: schema.FieldTypeString, Required: true, Label: "Last name"},
			{Name: "email", Type: schema.FieldTypeString, Format: "email", Required: true, Label: "Email"},
			{Name: "street", Type: schema.FieldTypeString, Required: true, Label: "Street address"},
			{Name: "city", Type: schema.FieldTypeString, Required: true, Label: "City"},
			{Name: "newsletter", Type: schema.FieldTypeBoolean, Label: "Newsletter", Default: false},
		},
		Steps: []schema.Step{
			{ID: "personal", Title: "Personal info", Fields: []string{"firstName", "lastName", "email"}},
			{ID: "address", Title: "Address", Fields: []string{"street", "city"}},
			{ID: "preferences", Title: "Preferences", Fields: []string{"newsletter"}},
			{ID: "review", Title: "Review"},
		},
	}
}

func newController(t *testing.T, options ...wizard.Option) *wizard.Controller {
	t.Helper()
	c, err := wizard.New(signupDefinition(), options...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func fillPersonal(t *testing.T, c *wizard.Controller) {
	t.Helper()
	setInputs(t, c, map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	})
}

func fillAddress(t *testing.T, c *wizard.Controller) {
	t.Helper()
	setInputs(t, c, map[string]any{
		"street": "12 Analytical Way",
		"city":   "London",
	})
}

func setInputs(t *testing.T, c *wizard.Controller, values map[string]any) {
	t.Helper()
	for name, value := range values {
		if err := c.SetInput(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

func advance(t *testing.T, c *wizard.Controller) {
	t.Helper()
	if err := c.Advance(context.Background()); err != nil {
		t.Fatalf("advance from step %d: %v", c.StepIndex(), err)
	}
}

func TestAdvanceBlockedByValidation(t *testing.T) {
	c := newController(t)

	setInputs(t, c, map[string]any{"firstName": "", "email": "bad"})
	advance(t, c)

	if c.StepIndex() != 0 {
		t.Fatalf("index moved to %d on failed validation", c.StepIndex())
	}
	if got := c.Errors().Field("firstName"); got != "First name is required" {
		t.Fatalf("firstName message %q", got)
	}
	if got := c.Errors().Field("email"); got != "Invalid email address" {
		t.Fatalf("email message %q", got)
	}
	if len(c.Values()) != 0 {
		t.Fatalf("accumulated values mutated on failed advance: %v", c.Values())
	}
}

func TestAdvanceMergesExactlyStepFields(t *testing.T) {
	c := newController(t)

	fillPersonal(t, c)
	advance(t, c)

	if c.StepIndex() != 1 {
		t.Fatalf("index %d after valid advance, want 1", c.StepIndex())
	}
	if c.Errors().Has() {
		t.Fatalf("errors retained after successful advance: %v", c.Errors())
	}

	want := map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	}
	if diff := cmp.Diff(want, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestEarlierValuesSurviveLaterSteps(t *testing.T) {
	c := newController(t)

	fillPersonal(t, c)
	advance(t, c)
	fillAddress(t, c)
	advance(t, c)
	advance(t, c) // preferences; newsletter defaults to false

	values := c.Values()
	if values["firstName"] != "Ada" || values["email"] != "ada@example.com" {
		t.Fatalf("personal values lost: %v", values)
	}
	if values["street"] != "12 Analytical Way" {
		t.Fatalf("address values lost: %v", values)
	}
	if values["newsletter"] != false {
		t.Fatalf("default not applied: %v", values)
	}
	if !c.Done() {
		t.Fatalf("controller should be on review, index %d", c.StepIndex())
	}
}

func TestRetreatKeepsAccumulatedValues(t *testing.T) {
	c := newController(t)

	fillPersonal(t, c)
	advance(t, c)
	before := c.Values()

	setInputs(t, c, map[string]any{"street": "unvalidated draft"})
	c.Retreat()

	if c.StepIndex() != 0 {
		t.Fatalf("index %d after retreat, want 0", c.StepIndex())
	}
	if c.Direction() != wizard.DirectionBackward {
		t.Fatalf("direction should be backward")
	}
	if diff := cmp.Diff(before, c.Values()); diff != "" {
		t.Fatalf("retreat mutated values (-want +got):\n%s", diff)
	}
	// Draft on the abandoned step is dropped; the street value never advanced.
	if _, ok := c.Values()["street"]; ok {
		t.Fatalf("unadvanced draft leaked into values")
	}
}

func TestRetreatPrefillsDraftFromValues(t *testing.T) {
	c := newController(t)

	fillPersonal(t, c)
	advance(t, c)
	c.Retreat()

	value, ok := c.Input("firstName")
	if !ok || value != "Ada" {
		t.Fatalf("draft not prefilled from accumulated values: %v %v", value, ok)
	}
}

func TestRetreatOnFirstStepIsNoOp(t *testing.T) {
	c := newController(t)
	c.Retreat()
	if c.StepIndex() != 0 {
		t.Fatalf("retreat on first step moved index to %d", c.StepIndex())
	}
}

func TestSubmitRunsExactlyOnce(t *testing.T) {
	calls := 0
	var received map[string]any
	c := newController(t, wizard.WithOnSubmit(func(_ context.Context, values map[string]any) error {
		calls++
		received = values
		return nil
	}))

	fillPersonal(t, c)
	advance(t, c)
	fillAddress(t, c)
	advance(t, c)

	if calls != 0 {
		t.Fatalf("submit ran before the final data step completed")
	}

	advance(t, c) // completes preferences, the step before review

	if calls != 1 {
		t.Fatalf("submit calls = %d, want 1", calls)
	}
	if !c.Submitted() {
		t.Fatalf("submitted flag not set")
	}
	if received["email"] != "ada@example.com" {
		t.Fatalf("submit payload incomplete: %v", received)
	}

	// Going back and completing the step again must not resubmit.
	c.Retreat()
	advance(t, c)

	if calls != 1 {
		t.Fatalf("submit ran again after retreat, calls = %d", calls)
	}
	if !c.Done() {
		t.Fatalf("controller should be back on review")
	}
}

func TestSubmitErrorBlocksAdvancement(t *testing.T) {
	boom := errors.New("backend rejected the payload")
	calls := 0
	c := newController(t, wizard.WithOnSubmit(func(context.Context, map[string]any) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	}))

	fillPersonal(t, c)
	advance(t, c)
	fillAddress(t, c)
	advance(t, c)
	advance(t, c) // submit fails

	if c.StepIndex() != 2 {
		t.Fatalf("index %d after failed submit, want 2", c.StepIndex())
	}
	if c.Submitted() {
		t.Fatalf("submitted flag set despite callback failure")
	}
	if c.FormError() != boom.Error() {
		t.Fatalf("form error %q", c.FormError())
	}

	advance(t, c) // retry succeeds

	if !c.Submitted() || !c.Done() {
		t.Fatalf("retry did not complete: submitted=%v index=%d", c.Submitted(), c.StepIndex())
	}
	if c.FormError() != "" {
		t.Fatalf("form error retained after success: %q", c.FormError())
	}
}

func TestFullSchemaCheckBeforeSubmit(t *testing.T) {
	// A permissive step validator lets each step through, but the full-schema
	// pass before review must still catch the gap.
	calls := 0
	c := newController(t,
		wizard.WithValidator(permissiveValidator{}),
		wizard.WithOnSubmit(func(context.Context, map[string]any) error {
			calls++
			return nil
		}),
	)

	advance(t, c) // personal, empty
	advance(t, c) // address, empty
	advance(t, c) // preferences completes, full validation must fail

	if c.StepIndex() != 2 {
		t.Fatalf("index %d, want 2 after failed full validation", c.StepIndex())
	}
	if calls != 0 {
		t.Fatalf("submit ran despite incomplete schema")
	}
	if !c.Errors().Has() {
		t.Fatalf("full validation errors not surfaced")
	}
}

// permissiveValidator passes every subset but applies the real rules for the
// full-schema pass.
type permissiveValidator struct{}

func (permissiveValidator) ValidateSubset(context.Context, map[string]any, []string) validation.Errors {
	return nil
}

func (permissiveValidator) ValidateAll(ctx context.Context, values map[string]any) validation.Errors {
	v, err := validation.New(signupDefinition())
	if err != nil {
		panic(err)
	}
	return v.ValidateAll(ctx, values)
}

func TestReentrantAdvanceRejected(t *testing.T) {
	var c *wizard.Controller
	var reentrant error
	c = newController(t, wizard.WithValidator(hookValidator{
		subset: func(ctx context.Context) validation.Errors {
			reentrant = c.Advance(ctx)
			return nil
		},
	}))

	fillPersonal(t, c)
	advance(t, c)

	if !errors.Is(reentrant, wizard.ErrAdvanceInFlight) {
		t.Fatalf("reentrant advance error = %v, want ErrAdvanceInFlight", reentrant)
	}
	if c.StepIndex() != 1 {
		t.Fatalf("outer advance should still complete, index %d", c.StepIndex())
	}
}

func TestCancelledContextLeavesStateUntouched(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := newController(t, wizard.WithValidator(hookValidator{
		subset: func(context.Context) validation.Errors {
			cancel()
			return nil
		},
	}))

	fillPersonal(t, c)
	err := c.Advance(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("advance error = %v, want context.Canceled", err)
	}
	if c.StepIndex() != 0 {
		t.Fatalf("index moved to %d after cancelled advance", c.StepIndex())
	}
	if len(c.Values()) != 0 {
		t.Fatalf("values mutated after cancelled advance: %v", c.Values())
	}
}

// hookValidator lets a test run code inside the validation calls.
type hookValidator struct {
	subset func(ctx context.Context) validation.Errors
}

func (h hookValidator) ValidateSubset(ctx context.Context, _ map[string]any, _ []string) validation.Errors {
	if h.subset != nil {
		return h.subset(ctx)
	}
	return nil
}

func (hookValidator) ValidateAll(context.Context, map[string]any) validation.Errors {
	return nil
}

func TestSetInputRejectsUnownedField(t *testing.T) {
	c := newController(t)
	if err := c.SetInput("street", "early"); err == nil {
		t.Fatalf("expected rejection for field outside the active step")
	}
	if err := c.SetInput("nope", "x"); err == nil {
		t.Fatalf("expected rejection for unknown field")
	}
}

func TestWithValuesPrefillsDraft(t *testing.T) {
	c := newController(t, wizard.WithValues(map[string]any{
		"firstName": "Grace",
		"city":      "New York",
	}))

	value, ok := c.Input("firstName")
	if !ok || value != "Grace" {
		t.Fatalf("seeded value not in draft: %v %v", value, ok)
	}
	if got := c.Values()["city"]; got != "New York" {
		t.Fatalf("seeded value missing from accumulated map: %v", got)
	}
}

func TestWithErrorsDoesNotAliasCallerMap(t *testing.T) {
	seeded := validation.Errors{"email": "Already registered"}
	c := newController(t, wizard.WithErrors(seeded))

	if got := c.Errors().Field("email"); got != "Already registered" {
		t.Fatalf("seeded error missing: %q", got)
	}

	seeded["email"] = "mutated"
	if got := c.Errors().Field("email"); got != "Already registered" {
		t.Fatalf("controller errors alias the caller's map: %q", got)
	}
}

func TestValuesReturnsDeepCopy(t *testing.T) {
	c := newController(t, wizard.WithValues(map[string]any{
		"firstName": "Ada",
	}))

	snapshot := c.Values()
	snapshot["firstName"] = "changed"

	if got := c.Values()["firstName"]; got != "Ada" {
		t.Fatalf("external mutation reached controller state: %v", got)
	}
}

func TestNewRejectsInvalidDefinition(t *testing.T) {
	def := signupDefinition()
	def.Steps = def.Steps[:1]
	if _, err := wizard.New(def); err == nil {
		t.Fatalf("expected definition validation error")
	}
}

func TestProgressAccessors(t *testing.T) {
	c := newController(t)

	if c.StepCount() != 4 {
		t.Fatalf("step count %d", c.StepCount())
	}
	if c.Step().ID != "personal" {
		t.Fatalf("unexpected first step %q", c.Step().ID)
	}
	if c.Direction() != wizard.DirectionForward {
		t.Fatalf("initial direction should be forward")
	}

	fields := c.Fields()
	if len(fields) != 3 || fields[0].Name != "firstName" {
		t.Fatalf("unexpected step fields: %+v", fields)
	}

	fillPersonal(t, c)
	advance(t, c)

	if c.PreviousIndex() != 0 || c.StepIndex() != 1 {
		t.Fatalf("indices previous=%d current=%d", c.PreviousIndex(), c.StepIndex())
	}
}
