package types

import (
	"maps"
	"slices"
)

// DefaultIdea is the business idea a fresh draft starts with
const DefaultIdea = "EduPlan: Plataforma Educativa con IA"

// SectionContent maps section id to its free-text body
type SectionContent map[string]string

// Clone returns an independent copy; a nil map clones to an empty one
func (c SectionContent) Clone() SectionContent {
	out := make(SectionContent, len(c))
	maps.Copy(out, c)
	return out
}

// IDs returns the section ids in sorted order
func (c SectionContent) IDs() []string {
	return slices.Sorted(maps.Keys(c))
}

// Snapshot is the persisted triple of idea, section contents and company profile
type Snapshot struct {
	Idea     string         `json:"idea"`
	Contents SectionContent `json:"contents"`
	Profile  CompanyProfile `json:"profile"`
}

// DefaultSnapshot returns the state of a brand-new draft
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Idea:     DefaultIdea,
		Contents: SectionContent{},
	}
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	s.Contents = s.Contents.Clone()
	return s
}
