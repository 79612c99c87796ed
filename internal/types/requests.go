package types

import "github.com/go-playground/validator/v10"

// SetMethodologyRequest switches the active section outline
type SetMethodologyRequest struct {
	Methodology string `json:"methodology" validate:"required,oneof=TRADITIONAL LEAN"`
}

// SetViewModeRequest sets the view mode directly
type SetViewModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=EDIT PREVIEW"`
}

// SelectSectionRequest focuses a section and asks for its explanation
type SelectSectionRequest struct {
	SectionID string `json:"section_id" validate:"required,max=16"`
}

// SetIdeaRequest replaces the business idea. An empty idea is allowed.
type SetIdeaRequest struct {
	Idea string `json:"idea" validate:"max=2000"`
}

// SetTextRequest carries a free-text value for a profile field or section
type SetTextRequest struct {
	Value string `json:"value" validate:"max=20000"`
}

// Validate validates the SetMethodologyRequest using the validator.
func (r *SetMethodologyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetViewModeRequest using the validator.
func (r *SetViewModeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SelectSectionRequest using the validator.
func (r *SelectSectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetIdeaRequest using the validator.
func (r *SetIdeaRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetTextRequest using the validator.
func (r *SetTextRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
