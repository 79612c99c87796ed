package advisor

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/llm"
	"github.com/jonathan/eduplan/internal/prompts"
	"github.com/jonathan/eduplan/internal/schemas"
	"github.com/jonathan/eduplan/internal/types"
	"go.uber.org/zap"
)

// ProfileDraft is the structured section "2" of a Traditional draft: the ten narrative fields
// plus website, fiscal regime and schedule.
type ProfileDraft struct {
	ADN          string `json:"adn"`
	Valor        string `json:"valor"`
	Competencia  string `json:"competencia"`
	Mercado      string `json:"mercado"`
	Vision2026   string `json:"vision2026"`
	Viabilidad   string `json:"viabilidad"`
	Proyecciones string `json:"proyecciones"`
	Valores      string `json:"valores"`
	Pitch        string `json:"pitch"`
	Blindaje     string `json:"blindaje"`
	Website      string `json:"website"`
	FiscalRegime string `json:"fiscalRegime"`
	Schedule     string `json:"schedule"`
}

// Fields returns the drafted values keyed by profile field, in types.DraftFields order.
// Empty values are included; the merge decides what to do with them.
func (d *ProfileDraft) Fields() []DraftValue {
	return []DraftValue{
		{types.FieldADN, d.ADN},
		{types.FieldValor, d.Valor},
		{types.FieldCompetencia, d.Competencia},
		{types.FieldMercado, d.Mercado},
		{types.FieldVision2026, d.Vision2026},
		{types.FieldViabilidad, d.Viabilidad},
		{types.FieldProyecciones, d.Proyecciones},
		{types.FieldValores, d.Valores},
		{types.FieldPitch, d.Pitch},
		{types.FieldBlindaje, d.Blindaje},
		{types.FieldWebsite, d.Website},
		{types.FieldFiscalRegime, d.FiscalRegime},
		{types.FieldSchedule, d.Schedule},
	}
}

// DraftValue is one drafted profile field
type DraftValue struct {
	Field types.ProfileField
	Value string
}

// PlanDraft is a validated whole-plan draft
type PlanDraft struct {
	// Sections maps known section ids to drafted paragraphs
	Sections types.SectionContent
	// Profile is set only for Traditional drafts whose section "2" came back structured
	Profile *ProfileDraft
}

// FillPlan drafts every section of the given outline in one JSON-constrained call.
// The bool is false when the oracle failed or its answer was unusable; the caller must then
// leave its state untouched.
func (a *Advisor) FillPlan(ctx context.Context, idea string, m catalog.Methodology, sections []catalog.SectionRef) (*PlanDraft, bool) {
	prompt, err := buildPlanPrompt(idea, m, sections)
	if err != nil {
		a.logger.Error("plan prompt unavailable", zap.Error(err))
		return nil, false
	}

	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		a.warn(&OracleError{Operation: "fill plan", Cause: err}, zap.String("methodology", string(m)))
		return nil, false
	}

	draft, err := DecodePlanDraft(llm.CleanJSONBlock(raw), m, sections)
	if err != nil {
		a.warn(err, zap.String("methodology", string(m)))
		return nil, false
	}

	a.logger.Debug("plan drafted",
		zap.String("methodology", string(m)),
		zap.Int("sections", len(draft.Sections)),
		zap.Bool("profile", draft.Profile != nil))
	return draft, true
}

// DecodePlanDraft validates a raw draft against the plan-draft schema and keeps only what the
// outline can hold: string values for known section ids, and for Traditional the structured
// section "2". Anything else is dropped rather than coerced.
func DecodePlanDraft(raw string, m catalog.Methodology, sections []catalog.SectionRef) (*PlanDraft, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &ParseError{Operation: "fill plan", Message: "response is not a JSON object", Cause: err}
	}
	if err := schemas.Validate(schemas.PlanDraft, raw); err != nil {
		return nil, &ParseError{Operation: "fill plan", Message: "response does not match the draft schema", Cause: err}
	}

	known := make(map[string]bool, len(sections))
	for _, s := range sections {
		known[s.ID] = true
	}

	draft := &PlanDraft{Sections: types.SectionContent{}}
	for id, value := range fields {
		if !known[id] {
			continue
		}
		if catalog.IsProfileSection(m, id) {
			draft.Profile = decodeProfileDraft(value)
			continue
		}
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			continue
		}
		draft.Sections[id] = text
	}

	if len(draft.Sections) == 0 && draft.Profile == nil {
		return nil, &ParseError{Operation: "fill plan", Message: "response has no usable sections"}
	}
	return draft, nil
}

// decodeProfileDraft keeps the string-valued profile keys of a structured section "2".
// Keys holding anything else are left empty. Returns nil when section "2" is not an object.
func decodeProfileDraft(raw json.RawMessage) *ProfileDraft {
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return nil
	}

	text := func(key string) string {
		var s string
		if err := json.Unmarshal(values[key], &s); err != nil {
			return ""
		}
		return s
	}

	return &ProfileDraft{
		ADN:          text("adn"),
		Valor:        text("valor"),
		Competencia:  text("competencia"),
		Mercado:      text("mercado"),
		Vision2026:   text("vision2026"),
		Viabilidad:   text("viabilidad"),
		Proyecciones: text("proyecciones"),
		Valores:      text("valores"),
		Pitch:        text("pitch"),
		Blindaje:     text("blindaje"),
		Website:      text("website"),
		FiscalRegime: text("fiscalRegime"),
		Schedule:     text("schedule"),
	}
}

func buildPlanPrompt(idea string, m catalog.Methodology, sections []catalog.SectionRef) (string, error) {
	ids := make([]string, 0, len(sections))
	profileRule := ""
	for _, s := range sections {
		if catalog.IsProfileSection(m, s.ID) {
			rule, err := prompts.Get(prompts.Advisor, prompts.KeyFillPlanProfileRule)
			if err != nil {
				return "", err
			}
			profileRule = rule
			continue
		}
		ids = append(ids, s.ID)
	}

	return prompts.Render(prompts.Advisor, prompts.KeyFillPlan, map[string]string{
		"PlanType":     string(m),
		"BusinessIdea": idea,
		"ProfileRule":  profileRule,
		"SectionIDs":   strings.Join(ids, ", "),
	})
}
