package planner

import (
	"fmt"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
)

// SetIdea replaces the business idea
func (c *Controller) SetIdea(idea string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idea = idea
	c.persistLocked()
}

// SetProfileField writes one company profile field
func (c *Controller) SetProfileField(field types.ProfileField, value string) error {
	if _, ok := types.LookupField(string(field)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.profile.Set(field, value); err != nil {
		return err
	}
	c.persistLocked()
	return nil
}

// SetSectionContent writes the body of a section. Ids of either outline are accepted so
// content written under one methodology survives a switch to the other.
func (c *Controller) SetSectionContent(id, value string) error {
	if !knownSection(id) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if catalog.IsProfileSection(c.methodology, id) {
		return ErrProfileSection
	}
	c.contents[id] = value
	c.persistLocked()
	return nil
}

func knownSection(id string) bool {
	if _, ok := catalog.Find(catalog.Traditional, id); ok {
		return true
	}
	_, ok := catalog.Find(catalog.Lean, id)
	return ok
}
