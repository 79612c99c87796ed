package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/eduplan/internal/rendering"
)

// currentPlan projects the controller state for rendering
func (s *Server) currentPlan() rendering.Plan {
	view := s.planner.State()
	return rendering.Plan{Methodology: view.Methodology, Snapshot: view.Snapshot()}
}

// handleExport downloads the plan as plain text
func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	plan := s.currentPlan()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(rendering.ExportFilename(plan.Idea)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rendering.ExportText(plan)))
}

// handleDocument serves the printable HTML document
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	html, err := rendering.RenderHTML(rendering.BuildDocument(s.currentPlan(), s.now()))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleDocumentPDF prints the HTML document with a headless browser
func (s *Server) handleDocumentPDF(w http.ResponseWriter, r *http.Request) {
	plan := s.currentPlan()
	html, err := rendering.RenderHTML(rendering.BuildDocument(plan, s.now()))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	pdf, err := s.printPDF(r.Context(), html, s.printTimeout, s.logger)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	name := strings.TrimSuffix(rendering.ExportFilename(plan.Idea), ".txt") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
