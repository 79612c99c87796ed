package server

import (
	"net/http"

	"github.com/jonathan/eduplan/internal/narration"
)

func (s *Server) handleNarrationStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.narrator.Status())
}

// handleNarrationStart reads the current plan aloud, replacing any narration in progress
func (s *Server) handleNarrationStart(w http.ResponseWriter, r *http.Request) {
	if _, err := s.narrator.Start(narration.BuildScript(s.currentPlan())); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.narrator.Status())
}

func (s *Server) handleNarrationToggle(w http.ResponseWriter, r *http.Request) {
	if _, err := s.narrator.Toggle(); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.narrator.Status())
}

func (s *Server) handleNarrationStop(w http.ResponseWriter, _ *http.Request) {
	s.narrator.Stop()
	s.jsonResponse(w, http.StatusOK, s.narrator.Status())
}
