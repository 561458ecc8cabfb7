package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errWizardIDMissing = errors.New("schema: wizard id is required")
	errNoFields        = errors.New("schema: wizard declares no fields")
	errTooFewSteps     = errors.New("schema: wizard requires at least two steps")
)

// Validate checks the structural invariants a controller relies on: unique
// ids, every step field resolving to a declared field, single ownership, and
// a field-less review step at the end.
func (w Wizard) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return errWizardIDMissing
	}
	if len(w.Fields) == 0 {
		return errNoFields
	}
	if len(w.Steps) < 2 {
		return errTooFewSteps
	}

	declared := make(map[string]struct{}, len(w.Fields))
	for _, field := range w.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return errors.New("schema: field with empty name")
		}
		if _, exists := declared[name]; exists {
			return fmt.Errorf("schema: duplicate field %q", name)
		}
		declared[name] = struct{}{}
		if err := validateField(field); err != nil {
			return err
		}
	}

	stepIDs := make(map[string]struct{}, len(w.Steps))
	owned := make(map[string]string, len(w.Fields))
	for i, step := range w.Steps {
		id := strings.TrimSpace(step.ID)
		if id == "" {
			return fmt.Errorf("schema: step %d has an empty id", i)
		}
		if _, exists := stepIDs[id]; exists {
			return fmt.Errorf("schema: duplicate step %q", id)
		}
		stepIDs[id] = struct{}{}

		for _, name := range step.Fields {
			if _, ok := declared[name]; !ok {
				return fmt.Errorf("schema: step %q references unknown field %q", id, name)
			}
			if owner, taken := owned[name]; taken {
				return fmt.Errorf("schema: field %q owned by steps %q and %q", name, owner, id)
			}
			owned[name] = id
		}
	}

	last := w.Steps[len(w.Steps)-1]
	if !last.Review() {
		return fmt.Errorf("schema: final step %q must not own fields", last.ID)
	}
	return nil
}

func validateField(field Field) error {
	switch field.Type {
	case FieldTypeString, FieldTypeBoolean, FieldTypeInteger, FieldTypeNumber, "":
	default:
		return fmt.Errorf("schema: field %q has unsupported type %q", field.Name, field.Type)
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case ValidationRuleMin, ValidationRuleMax, ValidationRuleMinLength, ValidationRuleMaxLength:
			if strings.TrimSpace(rule.Params["value"]) == "" {
				return fmt.Errorf("schema: field %q rule %q missing value", field.Name, rule.Kind)
			}
		case ValidationRulePattern:
			if strings.TrimSpace(rule.Params["pattern"]) == "" {
				return fmt.Errorf("schema: field %q pattern rule missing expression", field.Name)
			}
		default:
			return fmt.Errorf("schema: field %q has unknown rule %q", field.Name, rule.Kind)
		}
	}
	return nil
}
