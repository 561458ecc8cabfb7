package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

const (
	stepExtensionKey  = "x-step"
	stepsExtensionKey = "x-wizard-steps"
	orderExtensionKey = "x-order"

	defaultStepID  = "details"
	reviewStepID   = "review"
	reviewStepName = "Review"
)

// WizardOptions tune how a definition is derived from an operation.
type WizardOptions struct {
	// ReviewTitle overrides the title of the appended review step.
	ReviewTitle string
	// DefaultStepTitle names the step that collects fields without an
	// x-step assignment when the operation declares no steps at all.
	DefaultStepTitle string
}

// WizardFromSource loads a document and derives the wizard definition for
// the named operation.
func WizardFromSource(ctx context.Context, src Source, operationID string, opts WizardOptions, loaderOptions ...LoaderOption) (schema.Wizard, error) {
	raw, err := Load(ctx, src, loaderOptions...)
	if err != nil {
		return schema.Wizard{}, err
	}
	return WizardFromDocument(ctx, raw, operationID, opts)
}

// WizardFromDocument parses a raw OpenAPI document and derives a wizard from
// the named operation's request body. Properties become fields; the
// x-wizard-steps operation extension declares step order and titles, the
// x-step property extension assigns fields to steps, and a review step is
// appended automatically.
func WizardFromDocument(ctx context.Context, raw []byte, operationID string, opts WizardOptions) (schema.Wizard, error) {
	if len(raw) == 0 {
		return schema.Wizard{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Wizard{}, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return schema.Wizard{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	body := requestSchema(operation)
	if body == nil {
		return schema.Wizard{}, fmt.Errorf("openapi: operation %q has no object request body", operationID)
	}

	fields, stepAssignment, err := convertProperties(body)
	if err != nil {
		return schema.Wizard{}, err
	}
	if len(fields) == 0 {
		return schema.Wizard{}, fmt.Errorf("openapi: operation %q request body declares no usable properties", operationID)
	}

	steps := buildSteps(operation, fields, stepAssignment, opts)

	wizard := schema.Wizard{
		ID:          operationID,
		Title:       strings.TrimSpace(operation.Summary),
		Description: strings.TrimSpace(operation.Description),
		Fields:      fields,
		Steps:       steps,
	}
	if err := wizard.Validate(); err != nil {
		return schema.Wizard{}, err
	}
	return wizard, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// convertProperties flattens the request body's object properties into
// wizard fields plus their step assignments. Nested objects and arrays are
// skipped; wizard steps collect scalar form input.
func convertProperties(body *openapi3.Schema) ([]schema.Field, map[string]string, error) {
	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	type ordered struct {
		field schema.Field
		step  string
		order float64
	}

	var entries []ordered
	for name, ref := range body.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value

		fieldType, ok := mapType(prop)
		if !ok {
			continue
		}

		field := schema.Field{
			Name:        name,
			Type:        fieldType,
			Format:      prop.Format,
			Label:       strings.TrimSpace(prop.Title),
			Description: strings.TrimSpace(prop.Description),
			Default:     prop.Default,
			Enum:        append([]any(nil), prop.Enum...),
			Validations: convertConstraints(prop),
		}
		if _, ok := required[name]; ok {
			field.Required = true
		}

		entries = append(entries, ordered{
			field: field,
			step:  extensionString(prop.Extensions, stepExtensionKey),
			order: extensionNumber(prop.Extensions, orderExtensionKey),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].field.Name < entries[j].field.Name
	})

	fields := make([]schema.Field, 0, len(entries))
	assignment := make(map[string]string, len(entries))
	for _, entry := range entries {
		fields = append(fields, entry.field)
		if entry.step != "" {
			assignment[entry.field.Name] = entry.step
		}
	}
	return fields, assignment, nil
}

func mapType(prop *openapi3.Schema) (schema.FieldType, bool) {
	switch {
	case prop.Type == nil:
		return schema.FieldTypeString, true
	case prop.Type.Is(openapi3.TypeString):
		return schema.FieldTypeString, true
	case prop.Type.Is(openapi3.TypeBoolean):
		return schema.FieldTypeBoolean, true
	case prop.Type.Is(openapi3.TypeInteger):
		return schema.FieldTypeInteger, true
	case prop.Type.Is(openapi3.TypeNumber):
		return schema.FieldTypeNumber, true
	default:
		return "", false
	}
}

func convertConstraints(prop *openapi3.Schema) []schema.ValidationRule {
	var rules []schema.ValidationRule
	if prop.MinLength > 0 {
		rules = append(rules, lengthRule(schema.ValidationRuleMinLength, prop.MinLength))
	}
	if prop.MaxLength != nil {
		rules = append(rules, lengthRule(schema.ValidationRuleMaxLength, *prop.MaxLength))
	}
	if prop.Pattern != "" {
		rules = append(rules, schema.ValidationRule{
			Kind:   schema.ValidationRulePattern,
			Params: map[string]string{"pattern": prop.Pattern},
		})
	}
	if prop.Min != nil {
		rules = append(rules, numberRule(schema.ValidationRuleMin, *prop.Min))
	}
	if prop.Max != nil {
		rules = append(rules, numberRule(schema.ValidationRuleMax, *prop.Max))
	}
	return rules
}

func lengthRule(kind string, value uint64) schema.ValidationRule {
	return schema.ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatUint(value, 10)},
	}
}

func numberRule(kind string, value float64) schema.ValidationRule {
	return schema.ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatFloat(value, 'f', -1, 64)},
	}
}

// buildSteps turns the x-wizard-steps declaration plus per-field assignments
// into the ordered step list, appending the review step. Fields without an
// assignment land in the first declared step, or in a default step when the
// operation declares none.
func buildSteps(operation *openapi3.Operation, fields []schema.Field, assignment map[string]string, opts WizardOptions) []schema.Step {
	declared := declaredSteps(operation)
	if len(declared) == 0 {
		title := opts.DefaultStepTitle
		if title == "" {
			title = "Details"
		}
		declared = []schema.Step{{ID: defaultStepID, Title: title}}
	}

	index := make(map[string]int, len(declared))
	for i, step := range declared {
		index[step.ID] = i
	}

	for _, field := range fields {
		target := 0
		if stepID, ok := assignment[field.Name]; ok {
			if i, known := index[stepID]; known {
				target = i
			}
		}
		declared[target].Fields = append(declared[target].Fields, field.Name)
	}

	// Steps that collect nothing would render as blank pages.
	steps := make([]schema.Step, 0, len(declared)+1)
	for _, step := range declared {
		if len(step.Fields) > 0 {
			steps = append(steps, step)
		}
	}

	reviewTitle := opts.ReviewTitle
	if reviewTitle == "" {
		reviewTitle = reviewStepName
	}
	return append(steps, schema.Step{ID: reviewStepID, Title: reviewTitle})
}

func declaredSteps(operation *openapi3.Operation) []schema.Step {
	raw, ok := operation.Extensions[stepsExtensionKey]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	var steps []schema.Step
	for _, entry := range list {
		attrs, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := stringAttr(attrs, "id")
		if id == "" {
			continue
		}
		steps = append(steps, schema.Step{
			ID:          id,
			Title:       stringAttr(attrs, "title"),
			Description: stringAttr(attrs, "description"),
		})
	}
	return steps
}

func stringAttr(attrs map[string]any, key string) string {
	if value, ok := attrs[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func extensionString(extensions map[string]any, key string) string {
	if extensions == nil {
		return ""
	}
	if value, ok := extensions[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func extensionNumber(extensions map[string]any, key string) float64 {
	if extensions == nil {
		return 0
	}
	switch v := extensions[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
