package schemas

import (
	"fmt"
	"strings"
)

// FieldError is one schema violation. Field is the dotted path gojsonschema reports, or "(root)".
type FieldError struct {
	Field   string
	Message string
}

// ValidationError means the document was read but does not satisfy the schema.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("schema validation failed with %d error(s): %s", len(e.Errors), strings.Join(parts, "; "))
}

// SchemaLoadError means the schema itself could not be read or compiled, or the document could
// not be decoded.
type SchemaLoadError struct {
	Path  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Path, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}
