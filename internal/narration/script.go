// Package narration reads the plan aloud: it builds the spoken script and drives a speech
// synthesizer through the idle, speaking and paused states.
package narration

import (
	"fmt"
	"strings"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/rendering"
)

const (
	// PendingContent is spoken for a section without content
	PendingContent = "Contenido pendiente"
	// UnknownFounder is spoken when no founder is set
	UnknownFounder = "No especificado"
)

// BuildScript composes the text read aloud for a plan: who it belongs to, the headline strategy
// of a Traditional plan, then every visible section in outline order.
func BuildScript(plan rendering.Plan) string {
	p := plan.Profile
	name := p.BusinessName
	if name == "" {
		name = plan.Idea
	}
	founder := p.Founder
	if founder == "" {
		founder = UnknownFounder
	}

	parts := []string{
		fmt.Sprintf("Plan de Negocios para %s.", name),
		fmt.Sprintf("Director: %s.", founder),
		"Identidad Corporativa.",
	}

	if plan.Methodology == catalog.Traditional {
		parts = append(parts,
			fmt.Sprintf("Historia y ADN: %s.", p.ADN),
			fmt.Sprintf("Núcleo de Valor: %s.", p.Valor),
			fmt.Sprintf("Estrategia de Competencia: %s.", p.Competencia),
			fmt.Sprintf("Análisis de Mercado: %s.", p.Mercado),
			fmt.Sprintf("Visión al Futuro: %s.", p.Vision2026),
		)
	}

	sections := catalog.VisibleSections(plan.Methodology)
	spoken := make([]string, 0, len(sections))
	for _, s := range sections {
		content := plan.Contents[s.ID]
		if content == "" {
			content = PendingContent
		}
		spoken = append(spoken, s.Title+": "+content)
	}
	parts = append(parts, strings.Join(spoken, ". "))

	return strings.Join(parts, " ")
}
