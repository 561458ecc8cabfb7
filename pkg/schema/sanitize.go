package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips any markup from user-facing copy. Definitions can come
// from untrusted files and their text is echoed straight into terminals and
// prompt messages.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := plainTextPolicy().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func plainTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeWizard(wizard *Wizard) {
	if wizard == nil {
		return
	}
	wizard.Title = sanitizeText(wizard.Title)
	wizard.Description = sanitizeText(wizard.Description)
	for i := range wizard.Fields {
		field := &wizard.Fields[i]
		field.Label = sanitizeText(field.Label)
		field.Placeholder = sanitizeText(field.Placeholder)
		field.Description = sanitizeText(field.Description)
	}
	for i := range wizard.Steps {
		step := &wizard.Steps[i]
		step.Title = sanitizeText(step.Title)
		step.Description = sanitizeText(step.Description)
	}
}
