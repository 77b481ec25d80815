package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["person"],
	"properties": {
		"person": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"}
			}
		}
	}
}`

func TestValidate_AdHocSchema(t *testing.T) {
	s := Schema{Name: "person", Document: personSchema}

	assert.NoError(t, s.Validate(`{"person": {"name": "Ada"}}`))

	err := s.Validate(`{"person": {}}`)
	var violations *ValidationError
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, "person", violations.Schema)
	require.NotEmpty(t, violations.Errors)
	assert.Contains(t, violations.Errors[0].Field, "person")
}

func TestValidate_RootViolation(t *testing.T) {
	err := MustGet(Profile).Validate(`{"education": []}`)

	var violations *ValidationError
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, Profile, violations.Schema)
	assert.Equal(t, "(root)", violations.Errors[0].Field)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := MustGet(Profile).Validate(`{ invalid json }`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, Profile, loadErr.Path)
	assert.Error(t, loadErr.Unwrap())
}

func TestValidate_BrokenSchema(t *testing.T) {
	s := Schema{Name: "broken", Document: `{"type": 42}`}

	var loadErr *SchemaLoadError
	require.ErrorAs(t, s.Validate(`{}`), &loadErr)
	assert.Equal(t, "broken", loadErr.Path)
	assert.Contains(t, loadErr.Error(), "does not compile")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: WorkHistory,
		Errors: []FieldError{
			{Field: "work_experience.0.company", Message: "company is required"},
			{Field: "work_experience.1.position", Message: "Invalid type"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "work_history: document does not conform")
	assert.Contains(t, msg, "work_experience.0.company: company is required")
	assert.Contains(t, msg, "; work_experience.1.position")
}
