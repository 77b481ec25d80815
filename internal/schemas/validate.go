// Package schemas provides the registry of JSON Schemas that constrain structured LLM output,
// and validation of generated documents against them.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one schema violation, addressed by its dotted path in the document.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a generated document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		lines = append(lines, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s: document does not conform: %s", e.Schema, strings.Join(lines, "; "))
}

// SchemaLoadError is returned when a schema is not registered, does not compile, or the
// document handed to it cannot be read.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func compile(name, document string) (*gojsonschema.Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema does not compile", Cause: err}
	}
	return compiled, nil
}

// Validate checks a JSON document against the schema. Violations come back as a
// *ValidationError; an unreadable document or schema as a *SchemaLoadError.
func (s Schema) Validate(jsonContent string) error {
	compiled := s.compiled
	if compiled == nil {
		var err error
		if compiled, err = compile(s.Name, s.Document); err != nil {
			return err
		}
	}

	result, err := compiled.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Path: s.Name, Message: "document could not be read", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	violations := &ValidationError{Schema: s.Name}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violations.Errors = append(violations.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return violations
}
