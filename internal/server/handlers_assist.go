package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/eduplan/internal/planner"
	"github.com/jonathan/eduplan/internal/types"
	"go.uber.org/zap"
)

// FieldFillResponse is the value drafted for one profile field
type FieldFillResponse struct {
	Field types.ProfileField `json:"field"`
	Value string             `json:"value"`
}

// FillEmptyResponse lists the profile fields that were drafted
type FillEmptyResponse struct {
	Filled []types.ProfileField `json:"filled"`
}

// fieldEvent is one streamed field outcome
type fieldEvent struct {
	Field types.ProfileField `json:"field"`
	Value string             `json:"value,omitempty"`
	Error string             `json:"error,omitempty"`
}

func (s *Server) handleRefineIdea(w http.ResponseWriter, r *http.Request) {
	idea, err := s.planner.RefineIdea(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"idea": idea})
}

func (s *Server) handleFillField(w http.ResponseWriter, r *http.Request) {
	field := types.ProfileField(r.PathValue("field"))
	value, err := s.planner.FillField(r.Context(), field)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, FieldFillResponse{Field: field, Value: value})
}

// handleFillEmptyFields drafts every empty profile field. Clients that accept text/event-stream
// get one "field" event per settled field followed by "complete".
func (s *Server) handleFillEmptyFields(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		s.streamFillEmptyFields(w, r)
		return
	}

	filled, err := s.planner.FillEmptyFields(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, FillEmptyResponse{Filled: nonNil(filled)})
}

func (s *Server) streamFillEmptyFields(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	filled, err := s.planner.FillEmptyFieldsNotify(r.Context(), func(res planner.FieldResult) {
		ev := fieldEvent{Field: res.Field, Value: res.Value}
		if res.Err != nil {
			ev.Error = res.Err.Error()
		}
		if werr := sse.WriteEvent("field", ev); werr != nil {
			s.logger.Debug("stream write failed", zap.Error(werr))
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(FillEmptyResponse{Filled: nonNil(filled)})
}

// handleFillPlan drafts the whole plan and returns the merged state. An oracle failure leaves
// the plan unchanged and is reported as 502.
func (s *Server) handleFillPlan(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.FillPlan(r.Context()); err != nil {
		if errors.Is(err, planner.ErrNoResult) {
			s.logger.Info("plan draft unavailable", zap.Error(err))
		}
		s.errorResponse(w, r, err)
		return
	}
	s.planResponse(w)
}

func nonNil(fields []types.ProfileField) []types.ProfileField {
	if fields == nil {
		return []types.ProfileField{}
	}
	return fields
}
