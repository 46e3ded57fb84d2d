package editor

import "strings"

// ValidationError local pre-submit rejection. Every failing field is
// collected before the error is built so the user sees one combined
// message; nothing is partially applied and the network layer is never
// reached.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required fields missing or invalid: " + strings.Join(e.Fields, ", ")
}

// Has reports whether the named field is among the failures.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
