package server

import (
	"net/http"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/planner"
	"github.com/jonathan/eduplan/internal/types"
)

// SectionStatus is a catalog section with its readiness in the current plan
type SectionStatus struct {
	catalog.Section
	Ready bool `json:"ready"`
}

// PlanResponse is the plan state plus the active outline
type PlanResponse struct {
	planner.View
	Sections []SectionStatus `json:"sections"`
}

// SelectionResponse is the outcome of selecting a section
type SelectionResponse struct {
	SectionID   string `json:"section_id"`
	Explanation string `json:"explanation"`
}

func newPlanResponse(view planner.View) PlanResponse {
	sections := view.Sections()
	statuses := make([]SectionStatus, len(sections))
	for i, sec := range sections {
		statuses[i] = SectionStatus{Section: sec, Ready: view.Ready(sec.ID)}
	}
	return PlanResponse{View: view, Sections: statuses}
}

// planResponse writes the current plan state
func (s *Server) planResponse(w http.ResponseWriter) {
	s.jsonResponse(w, http.StatusOK, newPlanResponse(s.planner.State()))
}

// handleCatalog lists the sections of a methodology
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	m, err := catalog.ParseMethodology(r.PathValue("methodology"))
	if err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "methodology", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"methodology": m,
		"label":       m.Label(),
		"sections":    catalog.Sections(m),
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, _ *http.Request) {
	s.planResponse(w)
}

func (s *Server) handleSetMethodology(w http.ResponseWriter, r *http.Request) {
	var req types.SetMethodologyRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.planner.SetMethodology(catalog.Methodology(req.Methodology)); err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "methodology", Message: err.Error()})
		return
	}
	s.planResponse(w)
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req types.SetViewModeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.planner.SetViewMode(types.ViewMode(req.Mode)); err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}
	s.planResponse(w)
}

func (s *Server) handleToggleView(w http.ResponseWriter, _ *http.Request) {
	s.planner.ToggleViewMode()
	s.planResponse(w)
}

// handleSelectSection selects a section and waits for its explanation
func (s *Server) handleSelectSection(w http.ResponseWriter, r *http.Request) {
	var req types.SelectSectionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	text, err := s.planner.SelectSection(r.Context(), req.SectionID)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SelectionResponse{SectionID: req.SectionID, Explanation: text})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, _ *http.Request) {
	s.planner.ClearSelection()
	s.planResponse(w)
}

func (s *Server) handleSetIdea(w http.ResponseWriter, r *http.Request) {
	var req types.SetIdeaRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.planner.SetIdea(req.Idea)
	s.planResponse(w)
}

func (s *Server) handleSetProfileField(w http.ResponseWriter, r *http.Request) {
	var req types.SetTextRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.planner.SetProfileField(types.ProfileField(r.PathValue("field")), req.Value); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.planResponse(w)
}

func (s *Server) handleSetSection(w http.ResponseWriter, r *http.Request) {
	var req types.SetTextRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.planner.SetSectionContent(r.PathValue("id"), req.Value); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.planResponse(w)
}
