// Package types provides type definitions for structured data used throughout the eduplan system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// CompanyProfile is the structured identity and strategy record behind Traditional section "2".
// JSON keys match the stored draft format.
type CompanyProfile struct {
	BusinessName string `json:"businessName"`
	Founder      string `json:"founder"`
	RFC          string `json:"rfc"`
	Website      string `json:"website"`
	Schedule     string `json:"schedule"`
	FiscalRegime string `json:"fiscalRegime"`
	ADN          string `json:"adn"`
	Valor        string `json:"valor"`
	Competencia  string `json:"competencia"`
	Mercado      string `json:"mercado"`
	Vision2026   string `json:"vision2026"`
	Viabilidad   string `json:"viabilidad"`
	Proyecciones string `json:"proyecciones"`
	Valores      string `json:"valores"`
	Pitch        string `json:"pitch"`
	Blindaje     string `json:"blindaje"`
}

// ProfileField names one CompanyProfile field by its JSON key
type ProfileField string

// Profile field keys
const (
	FieldBusinessName ProfileField = "businessName"
	FieldFounder      ProfileField = "founder"
	FieldRFC          ProfileField = "rfc"
	FieldWebsite      ProfileField = "website"
	FieldSchedule     ProfileField = "schedule"
	FieldFiscalRegime ProfileField = "fiscalRegime"
	FieldADN          ProfileField = "adn"
	FieldValor        ProfileField = "valor"
	FieldCompetencia  ProfileField = "competencia"
	FieldMercado      ProfileField = "mercado"
	FieldVision2026   ProfileField = "vision2026"
	FieldViabilidad   ProfileField = "viabilidad"
	FieldProyecciones ProfileField = "proyecciones"
	FieldValores      ProfileField = "valores"
	FieldPitch        ProfileField = "pitch"
	FieldBlindaje     ProfileField = "blindaje"
)

// FieldSpec describes how a profile field is presented and how the oracle is asked to fill it
type FieldSpec struct {
	Field ProfileField
	// Label is the editor label
	Label string
	// Heading is the numbered heading used in the printed document (narrative fields only)
	Heading string
	// HintLabel and HintDescription are passed to the single-field fill prompt
	HintLabel       string
	HintDescription string
}

var identitySpecs = []FieldSpec{
	{Field: FieldBusinessName, Label: "Nombre del Negocio", HintLabel: "Nombre", HintDescription: "Creativo"},
	{Field: FieldFounder, Label: "Fundador / CEO", HintLabel: "Fundador", HintDescription: "Nombre completo"},
	{Field: FieldRFC, Label: "RFC", HintLabel: "RFC", HintDescription: "Ejemplo"},
	{Field: FieldWebsite, Label: "Sitio Web", HintLabel: "Sitio Web", HintDescription: "Dominio"},
	{Field: FieldSchedule, Label: "Horario", HintLabel: "Horario", HintDescription: "Sugerido"},
	{Field: FieldFiscalRegime, Label: "Régimen Fiscal", HintLabel: "Régimen", HintDescription: "Adecuado"},
}

var narrativeSpecs = []FieldSpec{
	{Field: FieldADN, Label: "1. ADN Corporativo", Heading: "1. ADN Corporativo", HintLabel: "ADN", HintDescription: "Storytelling"},
	{Field: FieldValor, Label: "2. El Núcleo de Valor", Heading: "2. Núcleo de Valor", HintLabel: "Valor", HintDescription: "Estrategia"},
	{Field: FieldCompetencia, Label: "3. Competencia", Heading: "3. Diferenciación Competitiva", HintLabel: "Competencia", HintDescription: "Diferenciación"},
	{Field: FieldMercado, Label: "4. Análisis FODA", Heading: "4. Análisis FODA", HintLabel: "Mercado", HintDescription: "FODA"},
	{Field: FieldVision2026, Label: "5. Visión 2026", Heading: "5. Visión Tecnológica 2026", HintLabel: "Visión", HintDescription: "Tecnología"},
	{Field: FieldViabilidad, Label: "6. Viabilidad", Heading: "6. Viabilidad y Recursos", HintLabel: "Viabilidad", HintDescription: "Estructura"},
	{Field: FieldProyecciones, Label: "7. Proyecciones", Heading: "7. Modelo de Proyecciones", HintLabel: "Proyecciones", HintDescription: "Lineal a Pasivo"},
	{Field: FieldValores, Label: "8. Valores", Heading: "8. Cultura y Valores", HintLabel: "Valores", HintDescription: "Automatización"},
	{Field: FieldPitch, Label: "9. Pitch", Heading: "9. Pitch Ejecutivo", HintLabel: "Pitch", HintDescription: "Venta"},
	{Field: FieldBlindaje, Label: "10. Blindaje Legal", Heading: "10. Blindaje Estratégico", HintLabel: "Legal", HintDescription: "Propiedad Intelectual"},
}

// IdentityFields returns the six structured identity fields in editor order
func IdentityFields() []FieldSpec {
	out := make([]FieldSpec, len(identitySpecs))
	copy(out, identitySpecs)
	return out
}

// NarrativeFields returns the ten strategy narrative fields in their fixed 1–10 order
func NarrativeFields() []FieldSpec {
	out := make([]FieldSpec, len(narrativeSpecs))
	copy(out, narrativeSpecs)
	return out
}

// AllFields returns every profile field spec, identity first
func AllFields() []FieldSpec {
	return append(IdentityFields(), NarrativeFields()...)
}

// DraftFields returns the thirteen fields the whole-plan draft fills for section "2":
// the ten narrative fields plus website, fiscal regime and schedule.
func DraftFields() []ProfileField {
	fields := make([]ProfileField, 0, 13)
	for _, s := range narrativeSpecs {
		fields = append(fields, s.Field)
	}
	return append(fields, FieldWebsite, FieldFiscalRegime, FieldSchedule)
}

// LookupField returns the spec for a field key
func LookupField(key string) (FieldSpec, bool) {
	for _, s := range AllFields() {
		if string(s.Field) == key {
			return s, true
		}
	}
	return FieldSpec{}, false
}

// ParseProfileField validates a field key
func ParseProfileField(key string) (ProfileField, error) {
	spec, ok := LookupField(key)
	if !ok {
		return "", fmt.Errorf("unknown profile field: %q", key)
	}
	return spec.Field, nil
}

// ref returns a pointer to the struct field backing f, or nil for unknown keys
func (p *CompanyProfile) ref(f ProfileField) *string {
	switch f {
	case FieldBusinessName:
		return &p.BusinessName
	case FieldFounder:
		return &p.Founder
	case FieldRFC:
		return &p.RFC
	case FieldWebsite:
		return &p.Website
	case FieldSchedule:
		return &p.Schedule
	case FieldFiscalRegime:
		return &p.FiscalRegime
	case FieldADN:
		return &p.ADN
	case FieldValor:
		return &p.Valor
	case FieldCompetencia:
		return &p.Competencia
	case FieldMercado:
		return &p.Mercado
	case FieldVision2026:
		return &p.Vision2026
	case FieldViabilidad:
		return &p.Viabilidad
	case FieldProyecciones:
		return &p.Proyecciones
	case FieldValores:
		return &p.Valores
	case FieldPitch:
		return &p.Pitch
	case FieldBlindaje:
		return &p.Blindaje
	}
	return nil
}

// Get returns the value of a field; unknown fields read as empty
func (p CompanyProfile) Get(f ProfileField) string {
	if r := p.ref(f); r != nil {
		return *r
	}
	return ""
}

// Set assigns a field value, returning an error for unknown fields
func (p *CompanyProfile) Set(f ProfileField, value string) error {
	r := p.ref(f)
	if r == nil {
		return fmt.Errorf("unknown profile field: %q", f)
	}
	*r = value
	return nil
}

// SetIfEmpty assigns value only when the field currently holds no text.
// It reports whether the field changed.
func (p *CompanyProfile) SetIfEmpty(f ProfileField, value string) bool {
	r := p.ref(f)
	if r == nil || *r != "" || value == "" {
		return false
	}
	*r = value
	return true
}

// IsEmpty reports whether a field holds no non-whitespace text
func (p CompanyProfile) IsEmpty(f ProfileField) bool {
	return strings.TrimSpace(p.Get(f)) == ""
}
