// Package forms binds submitted form values to entity fields and collects
// per-field validation errors for re-display. No form ever writes to the
// store; a form with errors leaves storage untouched.
package forms

// Errors maps a field name to its validation messages. Formset rows use
// prefixed names such as "versions.2.version_number".
type Errors map[string][]string

// Add appends a message for the named field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether the named field has any error
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Any reports whether any field has an error
func (e Errors) Any() bool {
	return len(e) > 0
}
