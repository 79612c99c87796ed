package planner

import (
	"strings"

	"github.com/jonathan/eduplan/internal/advisor"
	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
)

// mergeDraftLocked applies a whole-plan draft.
//
// Traditional: the structured section "2" fills profile fields that are still empty (a value the
// user already has always wins) and seeds the business name from the idea; every other drafted
// section overwrites its content.
// Lean: the drafted sections replace the section contents outright.
func (c *Controller) mergeDraftLocked(draft *advisor.PlanDraft, m catalog.Methodology, idea string) {
	if m == catalog.Lean {
		c.contents = draft.Sections.Clone()
		return
	}

	if draft.Profile != nil {
		c.profile.SetIfEmpty(types.FieldBusinessName, ideaName(idea))
		for _, v := range draft.Profile.Fields() {
			c.profile.SetIfEmpty(v.Field, v.Value)
		}
	}
	for id, text := range draft.Sections {
		if catalog.IsProfileSection(m, id) {
			continue
		}
		c.contents[id] = text
	}
}

// ideaName is the part of the idea before the first ':' ("EduPlan: Plataforma…" → "EduPlan")
func ideaName(idea string) string {
	name, _, _ := strings.Cut(idea, ":")
	return strings.TrimSpace(name)
}
