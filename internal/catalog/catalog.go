// Package catalog holds the fixed section outlines for the two supported plan methodologies.
package catalog

import (
	"fmt"
	"strings"
)

// Methodology selects which section outline is active
type Methodology string

const (
	// Traditional is the classic nine-section business plan outline
	Traditional Methodology = "TRADITIONAL"
	// Lean is the Lean Startup / Business Model Canvas outline
	Lean Methodology = "LEAN"
)

// ProfileSectionID is the Traditional section whose content lives in the company profile
// rather than in the section content map.
const ProfileSectionID = "2"

// Section is one named unit of plan content, addressed by a stable id
type Section struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// SectionRef is the id/title pair sent to the oracle when drafting a whole plan
type SectionRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var traditionalSections = []Section{
	{ID: "1", Title: "Resumen Ejecutivo", Timestamp: "1:43", Icon: "📝", Description: "Brinda una descripción general de la empresa, sus objetivos, producto/servicio, equipo directivo e información financiera."},
	{ID: "2", Title: "Descripción de la Compañía", Timestamp: "2:09", Icon: "🏢", Description: "Detalla los problemas que la empresa resuelve, el mercado y las ventajas competitivas."},
	{ID: "3", Title: "Análisis de Mercado", Timestamp: "2:43", Icon: "📊", Description: "Se enfoca en conocer las necesidades del mercado y el análisis de la competencia."},
	{ID: "4", Title: "Organización y Gestión", Timestamp: "3:11", Icon: "👥", Description: "Explica la estructura legal, organigrama y experiencia del equipo directivo."},
	{ID: "5", Title: "Línea de Servicios o Productos", Timestamp: "3:55", Icon: "📦", Description: "Describe el producto, sus beneficios, ciclo de vida y propiedad intelectual."},
	{ID: "6", Title: "Publicidad y Ventas", Timestamp: "4:17", Icon: "📢", Description: "Estrategias de mercadeo, publicidad, ventas y procesos de atención al cliente."},
	{ID: "7", Title: "Solicitud de Financiamiento", Timestamp: "4:43", Icon: "💰", Description: "Establece las necesidades de capital, monto requerido y uso de los fondos."},
	{ID: "8", Title: "Proyecciones Financieras", Timestamp: "5:36", Icon: "📈", Description: "Muestra la estabilidad financiera con estados de resultados y flujos de caja."},
	{ID: "9", Title: "Apéndice", Timestamp: "6:40", Icon: "📎", Description: "Documentos de respaldo como historiales de crédito, CVs, licencias y contratos."},
}

var leanSections = []Section{
	{ID: "L1", Title: "Alianzas Clave", Timestamp: "7:55", Icon: "🤝", Description: "Otros negocios y servicios con los que la empresa colaborará (proveedores, aliados)."},
	{ID: "L2", Title: "Recursos Clave", Timestamp: "8:11", Icon: "🛠️", Description: "Los recursos más importantes: personal, capital y propiedad intelectual."},
	{ID: "L3", Title: "Propuesta de Valor", Timestamp: "8:23", Icon: "💎", Description: "Declaración clara sobre el valor especial que aportas al mercado."},
	{ID: "L4", Title: "Relaciones con Clientes", Timestamp: "8:32", Icon: "❤️", Description: "Forma en que los clientes se relacionarán con la empresa (personal, online)."},
	{ID: "L5", Title: "Segmentos de Cliente", Timestamp: "8:49", Icon: "🎯", Description: "El mercado meta específico al que la empresa servirá."},
	{ID: "L6", Title: "Canales", Timestamp: "8:53", Icon: "🚚", Description: "Formas más importantes de comunicación y entrega al cliente."},
	{ID: "L7", Title: "Estructura de Costos", Timestamp: "9:06", Icon: "⚖️", Description: "Inversión total, costos operativos, estrategias y desafíos financieros."},
	{ID: "L8", Title: "Corrientes de Ingresos", Timestamp: "9:18", Icon: "💵", Description: "Explicación de cómo generarás dinero (ventas, cuotas, publicidad)."},
}

// ParseMethodology accepts the canonical names and a few lowercase aliases
func ParseMethodology(s string) (Methodology, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Traditional), "TRADICIONAL":
		return Traditional, nil
	case string(Lean), "CANVAS":
		return Lean, nil
	default:
		return "", fmt.Errorf("unknown methodology: %q", s)
	}
}

// Valid reports whether m is one of the supported methodologies
func (m Methodology) Valid() bool {
	return m == Traditional || m == Lean
}

// Label returns the human-readable methodology name used in the printed document
func (m Methodology) Label() string {
	if m == Lean {
		return "Canvas Ágil / Lean Startup"
	}
	return "Tradicional Corporativa"
}

// Sections returns the outline for a methodology in declaration order.
// The returned slice is a copy.
func Sections(m Methodology) []Section {
	src := traditionalSections
	if m == Lean {
		src = leanSections
	}
	out := make([]Section, len(src))
	copy(out, src)
	return out
}

// Find looks up a section by id within a methodology's outline
func Find(m Methodology, id string) (Section, bool) {
	for _, s := range Sections(m) {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// IsProfileSection reports whether id under m is decomposed into the company profile
func IsProfileSection(m Methodology, id string) bool {
	return m == Traditional && id == ProfileSectionID
}

// VisibleSections returns the sections that are rendered as plain content blocks,
// which is every section except the Traditional profile section.
func VisibleSections(m Methodology) []Section {
	all := Sections(m)
	out := make([]Section, 0, len(all))
	for _, s := range all {
		if IsProfileSection(m, s.ID) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Refs returns the id/title pairs for every section of a methodology
func Refs(m Methodology) []SectionRef {
	sections := Sections(m)
	refs := make([]SectionRef, len(sections))
	for i, s := range sections {
		refs[i] = SectionRef{ID: s.ID, Title: s.Title}
	}
	return refs
}
