package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
)

// EmptyExportSection marks a section without content in the text export
const EmptyExportSection = "(Vacío)"

// exportStrategyHeaders are the text export headers of the ten strategy narratives, in order
var exportStrategyHeaders = []struct {
	header string
	field  types.ProfileField
}{
	{"1. ADN Y ORIGEN", types.FieldADN},
	{"2. NÚCLEO DE VALOR", types.FieldValor},
	{"3. COMPETENCIA", types.FieldCompetencia},
	{"4. MERCADO Y FODA", types.FieldMercado},
	{"5. VISIÓN 2026", types.FieldVision2026},
	{"6. VIABILIDAD", types.FieldViabilidad},
	{"7. PROYECCIONES", types.FieldProyecciones},
	{"8. VALORES", types.FieldValores},
	{"9. PITCH COMERCIAL", types.FieldPitch},
	{"10. BLINDAJE ESTRATÉGICO", types.FieldBlindaje},
}

// ExportText renders the flat plain-text export of a plan
func ExportText(plan Plan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "EDUPLAN - BUSINESS PLAN\n=========================\nIdea: %s\nFormato: %s\n\n", plan.Idea, plan.Methodology)

	if plan.Methodology == catalog.Traditional {
		p := plan.Profile
		sb.WriteString("DATOS CORPORATIVOS:\n")
		fmt.Fprintf(&sb, "- Nombre: %s\n", p.BusinessName)
		fmt.Fprintf(&sb, "- CEO: %s\n", p.Founder)
		fmt.Fprintf(&sb, "- RFC: %s\n", p.RFC)
		fmt.Fprintf(&sb, "- Sitio Web: %s\n", p.Website)
		fmt.Fprintf(&sb, "- Horario: %s\n", p.Schedule)
		fmt.Fprintf(&sb, "- Régimen Fiscal: %s\n\n", p.FiscalRegime)

		for _, h := range exportStrategyHeaders {
			fmt.Fprintf(&sb, "%s:\n%s\n\n", h.header, p.Get(h.field))
		}
	}

	for _, section := range catalog.VisibleSections(plan.Methodology) {
		sb.WriteString(strings.ToUpper(section.Title))
		sb.WriteString("\n-------------------------\n")
		sb.WriteString(orDefault(plan.Contents[section.ID], EmptyExportSection))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// ExportFilename names the text export after the first ten characters of the idea
func ExportFilename(idea string) string {
	prefix := []rune(idea)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return "EduPlan_" + EscapeFilename(string(prefix)) + ".txt"
}
