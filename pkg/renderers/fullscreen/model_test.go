package fullscreen

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func signupDefinition() schema.Wizard {
	return schema.Wizard{
		ID:    "signup",
		Title: "Create your account",
		Fields: []schema.Field{
			{Name: "firstName", Type: schema.FieldTypeString, Required: true, Label: "First name"},
			{Name: "email", Type: schema.FieldTypeString, Format: "email", Required: true, Label: "Email"},
			{Name: "newsletter", Type: schema.FieldTypeBoolean, Label: "Newsletter"},
		},
		Steps: []schema.Step{
			{ID: "personal", Title: "Personal info", Fields: []string{"firstName", "email"}},
			{ID: "preferences", Title: "Preferences", Fields: []string{"newsletter"}},
			{ID: "review", Title: "Review"},
		},
	}
}

func newTestModel(t *testing.T, options ...wizard.Option) (Model, *wizard.Controller) {
	t.Helper()
	controller, err := wizard.New(signupDefinition(), options...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return newModel(context.Background(), controller, nil), controller
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func enter(t *testing.T, m Model) Model {
	t.Helper()
	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestEnterOnLastControlAdvances(t *testing.T) {
	m, controller := newTestModel(t)

	m = typeText(t, m, "Ada")
	m = enter(t, m) // focus moves to email
	m = typeText(t, m, "ada@example.com")
	m = enter(t, m) // last control, commits and advances

	if controller.StepIndex() != 1 {
		t.Fatalf("index %d after valid step, want 1", controller.StepIndex())
	}
	if got := controller.Values()["firstName"]; got != "Ada" {
		t.Fatalf("firstName %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "Preferences") {
		t.Fatalf("view does not show next step:\n%s", view)
	}
}

func TestValidationErrorKeepsStepOnScreen(t *testing.T) {
	m, controller := newTestModel(t)

	m = enter(t, m) // focus to email, both fields still empty
	m = enter(t, m) // advance fails validation

	if controller.StepIndex() != 0 {
		t.Fatalf("index moved to %d despite invalid input", controller.StepIndex())
	}
	view := m.View()
	if !strings.Contains(view, "First name is required") {
		t.Fatalf("error not rendered:\n%s", view)
	}
	if !strings.Contains(view, "Email is required") {
		t.Fatalf("email error not rendered:\n%s", view)
	}
}

func TestSpaceTogglesAndFullFlowSubmits(t *testing.T) {
	submitted := 0
	m, controller := newTestModel(t, wizard.WithOnSubmit(func(context.Context, map[string]any) error {
		submitted++
		return nil
	}))

	m = typeText(t, m, "Ada")
	m = enter(t, m)
	m = typeText(t, m, "ada@example.com")
	m = enter(t, m)

	// Preferences step, toggle the newsletter on and complete.
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = enter(t, m)

	if submitted != 1 {
		t.Fatalf("submit calls = %d, want 1", submitted)
	}
	if !controller.Done() {
		t.Fatalf("controller not on review, index %d", controller.StepIndex())
	}

	want := map[string]any{
		"firstName":  "Ada",
		"email":      "ada@example.com",
		"newsletter": true,
	}
	if diff := cmp.Diff(want, controller.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	view := m.View()
	if !strings.Contains(view, "Form submitted successfully!") {
		t.Fatalf("success message missing:\n%s", view)
	}

	// Enter on the review step finishes the program.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := next.(Model)
	if !final.finished {
		t.Fatalf("enter on review did not finish")
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestEscRetreatsThenCancels(t *testing.T) {
	m, controller := newTestModel(t)

	m = typeText(t, m, "Ada")
	m = enter(t, m)
	m = typeText(t, m, "ada@example.com")
	m = enter(t, m)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if controller.StepIndex() != 0 {
		t.Fatalf("esc did not retreat, index %d", controller.StepIndex())
	}
	if m.Cancelled() {
		t.Fatalf("retreat must not cancel")
	}

	// Draft is prefilled from accumulated values after retreating.
	view := m.View()
	if !strings.Contains(view, "Ada") {
		t.Fatalf("prefilled value missing:\n%s", view)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Cancelled() {
		t.Fatalf("esc on first step should cancel")
	}
}

func TestCtrlCCancels(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.Cancelled() {
		t.Fatalf("ctrl+c should cancel")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m, _ := newTestModel(t)

	if m.focus != 0 {
		t.Fatalf("initial focus %d", m.focus)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 {
		t.Fatalf("focus after tab %d", m.focus)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 0 {
		t.Fatalf("focus should wrap, got %d", m.focus)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != 1 {
		t.Fatalf("focus after shift+tab %d", m.focus)
	}
}

func TestEnumControlCycling(t *testing.T) {
	def := schema.Wizard{
		ID: "plans",
		Fields: []schema.Field{
			{Name: "plan", Type: schema.FieldTypeString, Required: true, Label: "Plan", Enum: []any{"free", "pro", "team"}},
		},
		Steps: []schema.Step{
			{ID: "choose", Title: "Choose a plan", Fields: []string{"plan"}},
			{ID: "review", Title: "Review"},
		},
	}
	controller, err := wizard.New(def)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	m := newModel(context.Background(), controller, nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = enter(t, m)

	if got := controller.Values()["plan"]; got != "pro" {
		t.Fatalf("plan %v, want pro", got)
	}
}

func TestSeededErrorsPaintUntilFirstAdvance(t *testing.T) {
	controller, err := wizard.New(signupDefinition())
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	m := newModel(context.Background(), controller, validation.Errors{
		"email":                 "Already registered",
		validation.FormErrorKey: "Please correct the highlighted fields",
	})

	view := m.View()
	if !strings.Contains(view, "Already registered") {
		t.Fatalf("seeded field error not painted:\n%s", view)
	}
	if !strings.Contains(view, "Please correct the highlighted fields") {
		t.Fatalf("seeded form error not painted:\n%s", view)
	}

	m = typeText(t, m, "Ada")
	m = enter(t, m)
	m = typeText(t, m, "ada@example.com")
	m = enter(t, m) // first real validation pass replaces the seeds

	view = m.View()
	if strings.Contains(view, "Already registered") {
		t.Fatalf("seeded error survived a successful advance:\n%s", view)
	}
	if controller.StepIndex() != 1 {
		t.Fatalf("index %d, want 1", controller.StepIndex())
	}
}

func TestSeededErrorsReplacedByValidationErrors(t *testing.T) {
	controller, err := wizard.New(signupDefinition())
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	m := newModel(context.Background(), controller, validation.Errors{
		"email": "Already registered",
	})

	m = enter(t, m) // focus to email, fields empty
	m = enter(t, m) // advance fails, real errors take over

	view := m.View()
	if strings.Contains(view, "Already registered") {
		t.Fatalf("seeded error shown alongside fresh validation:\n%s", view)
	}
	if !strings.Contains(view, "Email is required") {
		t.Fatalf("validation error missing:\n%s", view)
	}
}

func TestViewShowsProgressAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "Step 1 of 3") {
		t.Fatalf("progress label missing:\n%s", view)
	}
	if !strings.Contains(view, "Create your account") {
		t.Fatalf("wizard title missing:\n%s", view)
	}
	if strings.Contains(view, "esc: back") {
		t.Fatalf("first step help should not offer back:\n%s", view)
	}
}
