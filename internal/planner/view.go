package planner

import (
	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
)

// View is a point-in-time copy of the controller state. Mutating it does not affect the controller.
type View struct {
	Methodology     catalog.Methodology  `json:"methodology"`
	SelectedSection string               `json:"selected_section,omitempty"`
	ViewMode        types.ViewMode       `json:"view_mode"`
	Idea            string               `json:"idea"`
	Contents        types.SectionContent `json:"contents"`
	Profile         types.CompanyProfile `json:"profile"`

	LoadingFields      []types.ProfileField `json:"loading_fields"`
	LoadingPlan        bool                 `json:"loading_plan"`
	LoadingExplanation bool                 `json:"loading_explanation"`
	RefiningIdea       bool                 `json:"refining_idea"`
	Explanation        string               `json:"explanation,omitempty"`
	Playback           types.PlaybackState  `json:"playback"`
}

// State returns a copy of the current state
func (c *Controller) State() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	loading := make([]types.ProfileField, 0, len(c.loadingFields))
	for _, spec := range types.AllFields() {
		if c.loadingFields[spec.Field] {
			loading = append(loading, spec.Field)
		}
	}

	return View{
		Methodology:        c.methodology,
		SelectedSection:    c.selected,
		ViewMode:           c.viewMode,
		Idea:               c.idea,
		Contents:           c.contents.Clone(),
		Profile:            c.profile,
		LoadingFields:      loading,
		LoadingPlan:        c.loadingPlan,
		LoadingExplanation: c.loadingExplanation,
		RefiningIdea:       c.refiningIdea,
		Explanation:        c.explanation,
		Playback:           c.narrator.State(),
	}
}

// Sections returns the active outline
func (v View) Sections() []catalog.Section {
	return catalog.Sections(v.Methodology)
}

// Ready reports whether a section has content: its body, or for the Traditional profile
// section a business name.
func (v View) Ready(id string) bool {
	if catalog.IsProfileSection(v.Methodology, id) {
		return v.Profile.BusinessName != "" || v.Contents[id] != ""
	}
	return v.Contents[id] != ""
}

// IsLoading reports whether a field has a draft in flight
func (v View) IsLoading(field types.ProfileField) bool {
	for _, f := range v.LoadingFields {
		if f == field {
			return true
		}
	}
	return false
}

// Snapshot returns the persisted part of the view
func (v View) Snapshot() types.Snapshot {
	return types.Snapshot{Idea: v.Idea, Contents: v.Contents.Clone(), Profile: v.Profile}
}
