package rendering

import (
	"fmt"
	"time"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
)

// Placeholder texts of the printed document
const (
	UntitledBusiness     = "SIN NOMBRE"
	UnassignedFounder    = "Pendiente de asignar"
	EmptySummaryValue    = "---"
	PendingStrategyPoint = "Este apartado estratégico aún requiere ser detallado para consolidar la estructura del negocio."
	PendingSection       = "Sección pendiente de redacción estratégica."

	DocumentKind       = "Plan Estratégico de Negocios"
	StrategyBlockTitle = "I. Identidad y Estrategia Central"
	FooterTitle        = "Certificación de Estrategia EduPlan"
	FooterNote         = "Este documento contiene la estructura fundamental para un negocio escalable, validado mediante inteligencia artificial de alta precisión."
)

// Plan is everything the document is projected from
type Plan struct {
	Methodology catalog.Methodology
	types.Snapshot
}

// Document is the structured final document
type Document struct {
	BusinessName string
	Kind         string
	Date         string
	Responsible  string
	Methodology  string
	Summary      []SummaryItem
	// Strategy is present only for Traditional plans
	Strategy   *StrategyBlock
	Sections   []DocumentSection
	Footer     string
	FooterNote string
}

// SummaryItem is one identity fact in the summary strip
type SummaryItem struct {
	Label   string
	Icon    string
	Value   string
	Missing bool
}

// StrategyBlock holds the ten strategy narratives of the company profile
type StrategyBlock struct {
	Title  string
	Points []StrategyPoint
}

// StrategyPoint is one numbered strategy narrative
type StrategyPoint struct {
	Title   string
	Content string
	Pending bool
}

// DocumentSection is one content section of the active outline
type DocumentSection struct {
	ID      string
	Number  string
	Title   string
	Body    string
	Pending bool
}

// Heading is the numbered section title, e.g. "II.1. Resumen Ejecutivo"
func (s DocumentSection) Heading() string {
	return fmt.Sprintf("%s. %s", s.Number, s.Title)
}

// BuildDocument projects a plan into its document. date is printed in the header.
func BuildDocument(plan Plan, date time.Time) Document {
	profile := plan.Profile
	doc := Document{
		BusinessName: orDefault(profile.BusinessName, UntitledBusiness),
		Kind:         DocumentKind,
		Date:         date.Format("2/1/2006"),
		Responsible:  orDefault(profile.Founder, UnassignedFounder),
		Methodology:  plan.Methodology.Label(),
		Summary: []SummaryItem{
			summaryItem("Web Oficial", "🌐", profile.Website),
			summaryItem("Registro Fiscal", "📄", profile.RFC),
			summaryItem("Operatividad", "⏰", profile.Schedule),
			summaryItem("Régimen Legal", "⚖️", profile.FiscalRegime),
		},
		Footer:     FooterTitle,
		FooterNote: FooterNote,
	}

	if plan.Methodology == catalog.Traditional {
		block := &StrategyBlock{Title: StrategyBlockTitle}
		for _, spec := range types.NarrativeFields() {
			content := profile.Get(spec.Field)
			block.Points = append(block.Points, StrategyPoint{
				Title:   spec.Heading,
				Content: orDefault(content, PendingStrategyPoint),
				Pending: content == "",
			})
		}
		doc.Strategy = block
	}

	for i, section := range catalog.VisibleSections(plan.Methodology) {
		body := plan.Contents[section.ID]
		doc.Sections = append(doc.Sections, DocumentSection{
			ID:      section.ID,
			Number:  sectionNumber(plan.Methodology, i),
			Title:   section.Title,
			Body:    orDefault(body, PendingSection),
			Pending: body == "",
		})
	}

	return doc
}

func sectionNumber(m catalog.Methodology, index int) string {
	if m == catalog.Traditional {
		return fmt.Sprintf("II.%d", index+1)
	}
	return fmt.Sprintf("%d", index+1)
}

func summaryItem(label, icon, value string) SummaryItem {
	return SummaryItem{Label: label, Icon: icon, Value: orDefault(value, EmptySummaryValue), Missing: value == ""}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
