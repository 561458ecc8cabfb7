// Package validation checks wizard input values against the declared field
// schema. A validator is compiled once per wizard definition and can then
// check any subset of fields (one step's worth) or the full schema.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Email-shaped: something@something.tld, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator holds compiled rules for every declared field of a wizard.
type Validator struct {
	fields []schema.Field
	rules  map[string]fieldRules
}

// New compiles rules for the wizard's fields. Invalid pattern expressions are
// rejected here so validation itself never fails at runtime.
func New(wizard schema.Wizard) (*Validator, error) {
	v := &Validator{
		fields: append([]schema.Field(nil), wizard.Fields...),
		rules:  make(map[string]fieldRules, len(wizard.Fields)),
	}
	for _, field := range wizard.Fields {
		rules, err := compileRules(field)
		if err != nil {
			return nil, err
		}
		v.rules[field.Name] = rules
	}
	return v, nil
}

// ValidateSubset checks only the named fields, returning a message per
// failing field. Fields not in the subset are ignored entirely.
func (v *Validator) ValidateSubset(ctx context.Context, values map[string]any, fields []string) Errors {
	errs := make(Errors)
	if v == nil {
		return errs
	}
	for _, name := range fields {
		if ctx != nil && ctx.Err() != nil {
			return errs
		}
		rules, ok := v.rules[name]
		if !ok {
			continue
		}
		if msg := rules.check(values[name]); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}

// ValidateAll checks every declared field regardless of subset. Used once,
// when completing the step prior to review.
func (v *Validator) ValidateAll(ctx context.Context, values map[string]any) Errors {
	if v == nil {
		return make(Errors)
	}
	names := make([]string, 0, len(v.fields))
	for _, field := range v.fields {
		names = append(names, field.Name)
	}
	return v.ValidateSubset(ctx, values, names)
}

type fieldRules struct {
	label    string
	kind     schema.FieldType
	email    bool
	required bool
	enum     []string
	min      *float64
	max      *float64
	minLen   *int
	maxLen   *int
	pattern  *regexp.Regexp
}

func compileRules(field schema.Field) (fieldRules, error) {
	rules := fieldRules{
		label:    field.DisplayLabel(),
		kind:     field.Type,
		email:    field.Type == schema.FieldTypeString && strings.EqualFold(field.Format, "email"),
		required: field.Required,
	}
	for _, value := range field.Enum {
		rules.enum = append(rules.enum, fmt.Sprint(value))
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case schema.ValidationRuleMin:
			if val, ok := parseFloat(rule.Params["value"]); ok {
				rules.min = &val
			}
		case schema.ValidationRuleMax:
			if val, ok := parseFloat(rule.Params["value"]); ok {
				rules.max = &val
			}
		case schema.ValidationRuleMinLength:
			if val, ok := parseInt(rule.Params["value"]); ok {
				rules.minLen = &val
			}
		case schema.ValidationRuleMaxLength:
			if val, ok := parseInt(rule.Params["value"]); ok {
				rules.maxLen = &val
			}
		case schema.ValidationRulePattern:
			expr := rule.Params["pattern"]
			re, err := regexp.Compile(expr)
			if err != nil {
				return fieldRules{}, fmt.Errorf("validation: field %q pattern %q: %w", field.Name, expr, err)
			}
			rules.pattern = re
		}
	}
	return rules, nil
}

// check returns an empty string when the value passes.
func (r fieldRules) check(value any) string {
	switch r.kind {
	case schema.FieldTypeBoolean:
		return r.checkBool(value)
	case schema.FieldTypeInteger, schema.FieldTypeNumber:
		return r.checkNumber(value)
	default:
		return r.checkString(value)
	}
}

func (r fieldRules) checkString(value any) string {
	str, ok := stringValue(value)
	if !ok {
		if r.required {
			return fmt.Sprintf("%s is required", r.label)
		}
		return ""
	}

	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		if r.required {
			return fmt.Sprintf("%s is required", r.label)
		}
		return ""
	}

	if r.email && !emailPattern.MatchString(trimmed) {
		return "Invalid email address"
	}
	if r.minLen != nil && len(str) < *r.minLen {
		return fmt.Sprintf("%s must be at least %d characters", r.label, *r.minLen)
	}
	if r.maxLen != nil && len(str) > *r.maxLen {
		return fmt.Sprintf("%s must be at most %d characters", r.label, *r.maxLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(str) {
		return fmt.Sprintf("%s is invalid", r.label)
	}
	if len(r.enum) > 0 && !contains(r.enum, str) {
		return fmt.Sprintf("%s must be one of: %s", r.label, strings.Join(r.enum, ", "))
	}
	return ""
}

func (r fieldRules) checkBool(value any) string {
	// Optional booleans: absent and false are both fine; anything that is
	// not a bool (or a recognisable bool string) is rejected.
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case bool:
		return ""
	case string:
		if v == "" {
			return ""
		}
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Sprintf("Invalid %s", r.label)
		}
		return ""
	default:
		return fmt.Sprintf("Invalid %s", r.label)
	}
}

func (r fieldRules) checkNumber(value any) string {
	num, ok := numberValue(value)
	if !ok {
		if value == nil || value == "" {
			if r.required {
				return fmt.Sprintf("%s is required", r.label)
			}
			return ""
		}
		return fmt.Sprintf("%s must be a number", r.label)
	}
	if r.kind == schema.FieldTypeInteger && num != float64(int64(num)) {
		return fmt.Sprintf("%s must be a whole number", r.label)
	}
	if r.min != nil && num < *r.min {
		return fmt.Sprintf("%s must be at least %v", r.label, *r.min)
	}
	if r.max != nil && num > *r.max {
		return fmt.Sprintf("%s must be at most %v", r.label, *r.max)
	}
	return ""
}

func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func contains(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	return val, err == nil
}

func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	return val, err == nil
}
