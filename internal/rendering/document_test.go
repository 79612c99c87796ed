package rendering

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var printDate = time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

func traditionalPlan() Plan {
	return Plan{
		Methodology: catalog.Traditional,
		Snapshot: types.Snapshot{
			Idea:     "EduPlan: Plataforma Educativa con IA",
			Contents: types.SectionContent{"1": "Resumen del plan", "2": "no debe aparecer", "9": "Anexos"},
			Profile: types.CompanyProfile{
				BusinessName: "EduPlan",
				Founder:      "Ana López",
				Website:      "eduplan.mx",
				ADN:          "Nacimos en el aula",
				Pitch:        "Aprender sin fricción",
			},
		},
	}
}

func TestBuildDocument_Traditional(t *testing.T) {
	doc := BuildDocument(traditionalPlan(), printDate)

	assert.Equal(t, "EduPlan", doc.BusinessName)
	assert.Equal(t, "Ana López", doc.Responsible)
	assert.Equal(t, "Tradicional Corporativa", doc.Methodology)
	assert.Equal(t, "5/3/2026", doc.Date)

	require.Len(t, doc.Summary, 4)
	assert.Equal(t, "eduplan.mx", doc.Summary[0].Value)
	assert.Equal(t, EmptySummaryValue, doc.Summary[1].Value)
	assert.True(t, doc.Summary[1].Missing)

	require.NotNil(t, doc.Strategy)
	assert.Equal(t, StrategyBlockTitle, doc.Strategy.Title)
	require.Len(t, doc.Strategy.Points, 10)
	assert.Equal(t, "1. ADN Corporativo", doc.Strategy.Points[0].Title)
	assert.Equal(t, "Nacimos en el aula", doc.Strategy.Points[0].Content)
	assert.Equal(t, PendingStrategyPoint, doc.Strategy.Points[1].Content)
	assert.True(t, doc.Strategy.Points[1].Pending)
	assert.Equal(t, "10. Blindaje Estratégico", doc.Strategy.Points[9].Title)

	require.Len(t, doc.Sections, 8)
	assert.Equal(t, "II.1. Resumen Ejecutivo", doc.Sections[0].Heading())
	assert.Equal(t, "Resumen del plan", doc.Sections[0].Body)
	assert.Equal(t, "II.2. Análisis de Mercado", doc.Sections[1].Heading())
	assert.Equal(t, PendingSection, doc.Sections[1].Body)
	assert.Equal(t, "II.8. Apéndice", doc.Sections[7].Heading())
	for _, s := range doc.Sections {
		assert.NotEqual(t, "2", s.ID)
	}
}

func TestBuildDocument_LeanAndDefaults(t *testing.T) {
	plan := Plan{
		Methodology: catalog.Lean,
		Snapshot:    types.Snapshot{Contents: types.SectionContent{"L3": "Valor único"}},
	}
	doc := BuildDocument(plan, printDate)

	assert.Equal(t, UntitledBusiness, doc.BusinessName)
	assert.Equal(t, UnassignedFounder, doc.Responsible)
	assert.Equal(t, "Canvas Ágil / Lean Startup", doc.Methodology)
	assert.Nil(t, doc.Strategy)

	require.Len(t, doc.Sections, 8)
	assert.Equal(t, "1. Alianzas Clave", doc.Sections[0].Heading())
	assert.Equal(t, "3. Propuesta de Valor", doc.Sections[2].Heading())
	assert.Equal(t, "Valor único", doc.Sections[2].Body)
	assert.False(t, doc.Sections[2].Pending)
}

func TestRenderHTML_Structure(t *testing.T) {
	html, err := RenderHTML(BuildDocument(traditionalPlan(), printDate))
	require.NoError(t, err)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "EduPlan", dom.Find("h1.business-name").Text())
	assert.Equal(t, 4, dom.Find(".summary-item").Length())
	assert.Equal(t, 1, dom.Find(".summary-item.missing .value").First().Length())

	strategy := dom.Find("section.strategy")
	assert.Equal(t, StrategyBlockTitle, strategy.Find("h2").Text())
	assert.Equal(t, 10, strategy.Find(".point").Length())

	var headings []string
	dom.Find("section.content h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	require.Len(t, headings, 8)
	assert.Equal(t, "II.1. Resumen Ejecutivo", headings[0])
	assert.NotContains(t, strings.Join(headings, "|"), "Descripción de la Compañía")
	assert.Equal(t, 0, dom.Find("#section-2").Length())

	assert.Equal(t, FooterTitle, dom.Find("footer .title").Text())
}

func TestRenderHTML_EscapesPlanText(t *testing.T) {
	plan := traditionalPlan()
	plan.Profile.BusinessName = `<script>alert("x")</script>`
	plan.Contents["1"] = "<b>negrita</b>"

	html, err := RenderHTML(BuildDocument(plan, printDate))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>negrita</b>")

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, `<script>alert("x")</script>`, dom.Find("h1.business-name").Text())
}

func TestRenderHTML_Lean(t *testing.T) {
	html, err := RenderHTML(BuildDocument(Plan{Methodology: catalog.Lean}, printDate))
	require.NoError(t, err)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 0, dom.Find("section.strategy").Length())
	assert.Equal(t, 8, dom.Find("section.content .pending").Length())
}

func TestErrors_Unwrap(t *testing.T) {
	cause := assert.AnError
	assert.ErrorIs(t, &TemplateError{Message: "m", Cause: cause}, cause)
	assert.ErrorIs(t, &RenderError{Message: "m", Cause: cause}, cause)
	assert.Equal(t, "render error: m", (&RenderError{Message: "m"}).Error())
}
