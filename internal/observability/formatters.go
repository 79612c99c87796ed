// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/eduplan/internal/advisor"
	"github.com/jonathan/eduplan/internal/planner"
	"github.com/jonathan/eduplan/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewWidth is how much of a section body is shown next to its title
	previewWidth = 30
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// oneLine collapses whitespace so multi-line bodies preview on a single line
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PrintPlan outputs the plan outline with readiness marks and a preview of each section.
func (p *Printer) PrintPlan(view planner.View) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Idea:     %s\n", oneLine(view.Idea)))
	if view.Profile.BusinessName != "" {
		sb.WriteString(fmt.Sprintf("Negocio:  %s\n", view.Profile.BusinessName))
	}
	if view.Profile.Founder != "" {
		sb.WriteString(fmt.Sprintf("Director: %s\n", view.Profile.Founder))
	}
	sb.WriteString("\n")

	sections := view.Sections()
	ready := 0
	for _, s := range sections {
		mark := "·"
		if view.Ready(s.ID) {
			mark = "✓"
			ready++
		}
		line := fmt.Sprintf("%s %s %s", mark, s.ID, s.Title)
		if body := oneLine(view.Contents[s.ID]); body != "" {
			line += ": " + truncate(body, previewWidth)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d/%d secciones listas", ready, len(sections)))

	p.printBox("PLAN "+strings.ToUpper(view.Methodology.Label()), sb.String())
}

// PrintProfile outputs the filled company profile fields and how many remain empty.
func (p *Printer) PrintProfile(profile types.CompanyProfile) {
	var sb strings.Builder
	var empty []string

	for _, spec := range types.AllFields() {
		value := oneLine(profile.Get(spec.Field))
		if value == "" {
			empty = append(empty, spec.HintLabel)
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s: %s\n", spec.HintLabel, value))
	}

	if len(empty) > 0 {
		sb.WriteString(fmt.Sprintf("\nPendientes (%d):\n", len(empty)))
		count := min(len(empty), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", empty[i]))
		}
		if len(empty) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... y %d más\n", len(empty)-maxItemsToShow))
		}
	}

	p.printBox("PERFIL DE LA EMPRESA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDraft outputs what a whole-plan draft proposed before it is merged.
func (p *Printer) PrintDraft(draft *advisor.PlanDraft) {
	if draft == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Secciones propuestas: %d\n", len(draft.Sections)))
	for _, id := range draft.Sections.IDs() {
		sb.WriteString(fmt.Sprintf("  • %s: %s\n", id, truncate(oneLine(draft.Sections[id]), previewWidth)))
	}

	if draft.Profile != nil {
		filled := 0
		for _, v := range draft.Profile.Fields() {
			if v.Value != "" {
				filled++
			}
		}
		sb.WriteString(fmt.Sprintf("\nPerfil propuesto: %d campos", filled))
	}

	p.printBox("BORRADOR DEL PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFilledFields outputs the profile fields a batch fill completed.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFilledFields(fields []types.ProfileField) {
	if len(fields) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "Ningún campo fue completado")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Completados %d campos:\n\n", len(fields)))
	for _, f := range fields {
		label := string(f)
		if spec, ok := types.LookupField(string(f)); ok {
			label = spec.Label
		}
		sb.WriteString(fmt.Sprintf("✓ %s\n", label))
	}

	p.printBox("CAMPOS COMPLETADOS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExplanation outputs a section explanation wrapped to the box width.
func (p *Printer) PrintExplanation(title, text string) {
	p.printBox(strings.ToUpper(title), wrap(text, boxWidth-4))
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var line []rune
		for _, word := range strings.Fields(paragraph) {
			w := []rune(word)
			if len(line) > 0 && len(line)+1+len(w) > width {
				lines = append(lines, string(line))
				line = nil
			}
			if len(line) > 0 {
				line = append(line, ' ')
			}
			line = append(line, w...)
		}
		lines = append(lines, string(line))
	}
	return strings.Join(lines, "\n")
}
