package schema

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Use the ValidationRule* constants to reference canonical constraints
// (min/max, minLength/maxLength, pattern). Numeric bounds and length limits
// encode their threshold in Params["value"] while pattern rules preserve the
// original expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models an individual input collected by the wizard. Struct fields are
// annotated so definitions round-trip through JSON and YAML documents.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel returns the label renderers should show for the field,
// falling back to the raw name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Step is one page of the wizard. A step owns an ordered subset of the
// wizard's fields by name; the final review step owns none.
type Step struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Review reports whether the step collects no input of its own.
func (s Step) Review() bool {
	return len(s.Fields) == 0
}

// Wizard is the top-level definition renderers and controllers consume: a
// flat field schema plus the ordered steps that partition it.
type Wizard struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Steps       []Step            `json:"steps" yaml:"steps"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FieldByName resolves a declared field by name.
func (w Wizard) FieldByName(name string) (Field, bool) {
	for _, field := range w.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// StepFields resolves the schema fields owned by the step at the given
// index, preserving the step's declared order. Unknown names are skipped;
// Validate rejects them up front.
func (w Wizard) StepFields(index int) []Field {
	if index < 0 || index >= len(w.Steps) {
		return nil
	}
	step := w.Steps[index]
	fields := make([]Field, 0, len(step.Fields))
	for _, name := range step.Fields {
		if field, ok := w.FieldByName(name); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// FieldNames returns the names of every declared field in declaration order.
func (w Wizard) FieldNames() []string {
	names := make([]string, 0, len(w.Fields))
	for _, field := range w.Fields {
		names = append(names, field.Name)
	}
	return names
}
