package llm

import "fmt"

// APICallError represents a transport failure talking to the model provider, including timeouts
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// SchemaViolationError represents generated output that does not conform to its schema
type SchemaViolationError struct {
	Schema string
	Cause  error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("output does not conform to schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error decoding the API response into a typed record
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
