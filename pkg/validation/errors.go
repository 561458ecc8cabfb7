package validation

// FormErrorKey indexes messages that do not belong to a single field, such as
// a failed submit callback.
const FormErrorKey = "_form"

// Errors maps field names to a single human-readable message. Validation
// failures are data surfaced inline per field, never Go errors.
type Errors map[string]string

// Has reports whether any message is present.
func (e Errors) Has() bool {
	return len(e) > 0
}

// Field returns the message attached to a field name, if any.
func (e Errors) Field(name string) string {
	if e == nil {
		return ""
	}
	return e[name]
}

// Form returns the form-level message, if any.
func (e Errors) Form() string {
	return e.Field(FormErrorKey)
}

// Merge copies messages from other, with other winning on collisions.
func (e Errors) Merge(other Errors) Errors {
	if len(other) == 0 {
		return e
	}
	out := make(Errors, len(e)+len(other))
	for name, msg := range e {
		out[name] = msg
	}
	for name, msg := range other {
		out[name] = msg
	}
	return out
}
