package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_PlanDraft(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{
			name: "traditional draft with structured profile",
			json: `{"2": {"adn": "Historia X", "website": "w.com"}, "1": "Resumen Y"}`,
		},
		{
			name: "lean draft",
			json: `{"L1": "Problema", "L2": "Segmentos"}`,
		},
		{
			name: "section 2 as plain paragraph",
			json: `{"2": "Descripción"}`,
		},
		{
			name: "non-string section values pass the schema and are filtered later",
			json: `{"1": 42, "3": "Mercado"}`,
		},
		{
			name:      "root is an array",
			json:      `["1", "2"]`,
			wantError: true,
		},
		{
			name:      "empty object",
			json:      `{}`,
			wantError: true,
		},
		{
			name:      "section 2 is a list",
			json:      `{"2": ["adn"]}`,
			wantError: true,
		},
		{
			name: "structured profile field passes the schema and is filtered later",
			json: `{"1": "Resumen", "2": {"adn": "Historia", "proyecciones": {"anio1": "100k"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(PlanDraft, tt.json)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T: %v", err, err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(PlanDraft, "{ no es json }")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, PlanDraft, loadErr.Path)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "missing.schema.json")
	assert.NotNil(t, errors.Unwrap(err))
}

func TestLoad_PlanDraftIsEmbedded(t *testing.T) {
	content, err := Load(PlanDraft)
	require.NoError(t, err)
	assert.Contains(t, content, `"profileDraft"`)
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["profile"],
		"properties": {
			"profile": {
				"type": "object",
				"required": ["founder"],
				"properties": {"founder": {"type": "string"}}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"profile": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Errors[0].Field, "profile")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "(root)", Message: "Invalid type"},
			{Field: "2.adn", Message: "must be a string"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. (root): Invalid type")
	assert.Contains(t, msg, "2. 2.adn: must be a string")
}
