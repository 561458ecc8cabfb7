package fullscreen

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type controlKind int

const (
	controlText controlKind = iota
	controlToggle
	controlEnum
)

// control pairs one active-step field with its interactive widget.
type control struct {
	field   schema.Field
	kind    controlKind
	input   textinput.Model
	checked bool
	options []string
	cursor  int
}

// Model is the Bubble Tea model for the full-screen wizard. It drives a
// wizard.Controller: committing drafts, advancing, retreating, and painting
// validation errors inline.
type Model struct {
	ctx        context.Context
	controller *wizard.Controller
	styles     styles

	controls []control
	focus    int
	seeded   validation.Errors

	width     int
	height    int
	cancelled bool
	finished  bool
	runErr    error
}

func newModel(ctx context.Context, controller *wizard.Controller, seeded validation.Errors) Model {
	m := Model{
		ctx:        ctx,
		controller: controller,
		styles:     defaultStyles(),
		seeded:     seeded,
	}
	m.syncControls()
	return m
}

// Cancelled reports whether the user aborted the wizard.
func (m Model) Cancelled() bool { return m.cancelled }

// Err returns the error that stopped the wizard, if any.
func (m Model) Err() error { return m.runErr }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.controller.StepIndex() > 0 && !m.controller.Done() {
				m.controller.Retreat()
				m.syncControls()
				return m, nil
			}
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if m.controller.Done() {
				m.finished = true
				return m, tea.Quit
			}
			if m.focus < len(m.controls)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.advance()

		case "tab", "down":
			if !m.controller.Done() && len(m.controls) > 0 {
				m.setFocus((m.focus + 1) % len(m.controls))
			}
			return m, nil

		case "shift+tab", "up":
			if !m.controller.Done() && len(m.controls) > 0 {
				m.setFocus((m.focus - 1 + len(m.controls)) % len(m.controls))
			}
			return m, nil

		case " ":
			if c := m.focusedControl(); c != nil && c.kind == controlToggle {
				c.checked = !c.checked
				return m, nil
			}

		case "left":
			if c := m.focusedControl(); c != nil && c.kind == controlEnum && len(c.options) > 0 {
				c.cursor = (c.cursor - 1 + len(c.options)) % len(c.options)
				return m, nil
			}

		case "right":
			if c := m.focusedControl(); c != nil && c.kind == controlEnum && len(c.options) > 0 {
				c.cursor = (c.cursor + 1) % len(c.options)
				return m, nil
			}
		}
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if c := m.focusedControl(); c != nil && c.kind == controlText {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// advance commits every control's value to the controller draft, then asks
// the controller to move forward. Validation errors keep the step on screen.
func (m Model) advance() (tea.Model, tea.Cmd) {
	// Seeded errors only stand in until the first real validation pass.
	m.seeded = nil
	for _, c := range m.controls {
		if err := m.controller.SetInput(c.field.Name, c.value()); err != nil {
			m.runErr = err
			return m, tea.Quit
		}
	}
	if err := m.controller.Advance(m.ctx); err != nil {
		m.runErr = err
		return m, tea.Quit
	}
	if m.controller.Errors().Has() {
		return m, nil
	}
	m.syncControls()
	return m, nil
}

// syncControls rebuilds the widgets for the active step, prefilled from the
// controller's draft.
func (m *Model) syncControls() {
	fields := m.controller.Fields()
	controls := make([]control, 0, len(fields))
	for _, field := range fields {
		controls = append(controls, m.newControl(field))
	}
	m.controls = controls
	m.focus = 0
	m.setFocus(0)
}

func (m *Model) newControl(field schema.Field) control {
	draft, _ := m.controller.Input(field.Name)

	switch {
	case field.Type == schema.FieldTypeBoolean:
		checked, _ := draft.(bool)
		return control{field: field, kind: controlToggle, checked: checked}

	case len(field.Enum) > 0:
		options := make([]string, 0, len(field.Enum))
		for _, value := range field.Enum {
			options = append(options, fmt.Sprint(value))
		}
		cursor := 0
		if s, ok := draft.(string); ok {
			for i, option := range options {
				if option == s {
					cursor = i
					break
				}
			}
		}
		return control{field: field, kind: controlEnum, options: options, cursor: cursor}

	default:
		ti := textinput.New()
		ti.Placeholder = field.Placeholder
		ti.CharLimit = 128
		ti.Width = 40
		if field.Format == "password" {
			ti.EchoMode = textinput.EchoPassword
		}
		if draft != nil {
			ti.SetValue(fmt.Sprint(draft))
		}
		return control{field: field, kind: controlText, input: ti}
	}
}

func (m *Model) setFocus(index int) {
	if len(m.controls) == 0 {
		return
	}
	if index < 0 || index >= len(m.controls) {
		index = 0
	}
	m.focus = index
	for i := range m.controls {
		if m.controls[i].kind != controlText {
			continue
		}
		if i == index {
			m.controls[i].input.Focus()
		} else {
			m.controls[i].input.Blur()
		}
	}
}

func (m *Model) focusedControl() *control {
	if m.focus < 0 || m.focus >= len(m.controls) {
		return nil
	}
	return &m.controls[m.focus]
}

// value converts the widget state into the draft value the validator sees.
func (c control) value() any {
	switch c.kind {
	case controlToggle:
		return c.checked
	case controlEnum:
		if c.cursor >= 0 && c.cursor < len(c.options) {
			return c.options[c.cursor]
		}
		return ""
	default:
		raw := c.input.Value()
		switch c.field.Type {
		case schema.FieldTypeInteger:
			if i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
				return i
			}
		case schema.FieldTypeNumber:
			if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				return f
			}
		}
		return raw
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	def := m.controller.Definition()
	if def.Title != "" {
		b.WriteString(m.styles.title.Render(def.Title))
		b.WriteString("\n\n")
	}

	progress := render.ProgressFor(m.controller)
	b.WriteString(m.styles.progress.Render(progress.Markers("●", "○")))
	b.WriteString(m.styles.dim.Render("  " + progress.Label))
	b.WriteString("\n\n")

	if m.controller.Done() {
		m.viewReview(&b)
		return b.String()
	}

	step := m.controller.Step()
	b.WriteString(m.styles.step.Render(step.Title))
	b.WriteString("\n")
	if step.Description != "" {
		b.WriteString(m.styles.dim.Render(step.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	errs := m.controller.Errors()
	if !errs.Has() && m.seeded.Has() {
		errs = m.seeded
	}
	for i, c := range m.controls {
		m.viewControl(&b, c, i == m.focus)
		if msg := errs.Field(c.field.Name); msg != "" {
			b.WriteString(m.styles.errText.Render("  " + msg))
			b.WriteString("\n")
		}
	}

	if formErr := errs.Form(); formErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errText.Render(formErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "enter: next • tab: move • esc: back • ctrl+c: quit"
	if m.controller.StepIndex() == 0 {
		help = "enter: next • tab: move • ctrl+c: quit"
	}
	b.WriteString(m.styles.help.Render(help))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewControl(b *strings.Builder, c control, focused bool) {
	label := c.field.DisplayLabel()
	if c.field.Required {
		label += " *"
	}
	style := m.styles.label
	if focused {
		style = m.styles.focused
	}
	b.WriteString(style.Render(label))
	b.WriteString("\n")

	switch c.kind {
	case controlToggle:
		box := "[ ]"
		if c.checked {
			box = "[x]"
		}
		marker := "  "
		if focused {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s %s", marker, box, m.styles.dim.Render("(space to toggle)")))
		b.WriteString("\n")

	case controlEnum:
		marker := "  "
		if focused {
			marker = "> "
		}
		option := ""
		if c.cursor >= 0 && c.cursor < len(c.options) {
			option = c.options[c.cursor]
		}
		b.WriteString(fmt.Sprintf("%s< %s > %s", marker, option, m.styles.dim.Render("(←/→ to change)")))
		b.WriteString("\n")

	default:
		b.WriteString("  " + c.input.View())
		b.WriteString("\n")
	}
}

func (m Model) viewReview(b *strings.Builder) {
	step := m.controller.Step()
	b.WriteString(m.styles.step.Render(step.Title))
	b.WriteString("\n\n")

	values := m.controller.Values()
	for _, field := range m.controller.Definition().Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		display := fmt.Sprint(value)
		if field.Format == "password" {
			display = strings.Repeat("*", len(display))
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", m.styles.label.Render(field.DisplayLabel()), display))
	}

	b.WriteString("\n")
	if m.controller.Submitted() {
		b.WriteString(m.styles.success.Render("✓ Form submitted successfully!"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.help.Render("enter: finish • ctrl+c: quit"))
	b.WriteString("\n")
}
