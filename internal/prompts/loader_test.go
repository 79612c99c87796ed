package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(Advisor, KeyExplainSection)
	require.NoError(t, err)
	assert.Contains(t, prompt, "profesor de negocios experto")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(Advisor, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(Advisor, KeyGenerateIdea))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "all placeholders filled",
			template: "Idea: {{.BusinessIdea}} ({{.PlanType}})",
			data:     map[string]string{"BusinessIdea": "Cafetería", "PlanType": "LEAN"},
			expected: "Idea: Cafetería (LEAN)",
		},
		{
			name:     "no placeholders",
			template: "Sin variables",
			data:     map[string]string{"Key": "Value"},
			expected: "Sin variables",
		},
		{
			name:     "missing value keeps placeholder",
			template: "Hola {{.Name}}",
			data:     map[string]string{},
			expected: "Hola {{.Name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render(Advisor, KeyFillField, map[string]string{
		"BusinessIdea":     "Academia de robótica",
		"FieldName":        "Pitch",
		"FieldDescription": "30 segundos",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Academia de robótica"`)
	assert.Contains(t, prompt, `"Pitch"`)
	assert.Contains(t, prompt, "Descripción del campo: 30 segundos.")

	_, err = Render(Advisor, KeyFillField, map[string]string{"BusinessIdea": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FieldDescription")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.B}} {{.A}} {{.B}}"))
	assert.Empty(t, Placeholders("nada"))
}

func TestAdvisorPromptsDeclareExpectedPlaceholders(t *testing.T) {
	ClearCache()

	expected := map[string][]string{
		KeyExplainSection:      {"BusinessIdea", "PlanType", "SectionTitle"},
		KeyRefineIdea:          {"CurrentIdea"},
		KeyGenerateIdea:        nil,
		KeyFillField:           {"BusinessIdea", "FieldDescription", "FieldName"},
		KeyFillPlan:            {"BusinessIdea", "PlanType", "ProfileRule", "SectionIDs"},
		KeyFillPlanProfileRule: nil,
	}

	keys, err := List(Advisor)
	require.NoError(t, err)
	assert.Len(t, keys, len(expected))

	for key, names := range expected {
		template := MustGet(Advisor, key)
		if names == nil {
			assert.Empty(t, Placeholders(template), key)
			continue
		}
		assert.Equal(t, names, Placeholders(template), key)
	}
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get(Advisor, KeyFillPlan)
	require.NoError(t, err)

	prompt2, err := Get(Advisor, KeyFillPlan)
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
